package vm

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/litlang/litvm/internal/vmconfig"
)

// newTestMachine builds a Machine over an inline program, with Stdout
// captured into the returned buffer and Stdin fed from input.
func newTestMachine(program, input string) (*Machine, *bytes.Buffer) {
	lines := strings.Split(strings.TrimPrefix(program, "\n"), "\n")
	m := NewMachine("<test>", lines, vmconfig.Default())
	var out bytes.Buffer
	m.Stdout = &out
	m.Stderr = &out
	m.Stdin = bufio.NewReader(strings.NewReader(input))
	return m, &out
}
