package vm

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litlang/litvm/internal/vmconfig"
)

func TestPushEnforcesMaxStackDepth(t *testing.T) {
	cfg := vmconfig.Default()
	cfg.MaxStackDepth = 2
	lines := strings.Split(strings.TrimPrefix(`
LABEL main
PUSH_CONST int 1
PUSH_CONST int 2
PUSH_CONST int 3
HALT
`, "\n"), "\n")
	m := NewMachine("<test>", lines, cfg)
	var out bytes.Buffer
	m.Stdout = &out
	m.Stderr = &out
	m.Stdin = bufio.NewReader(strings.NewReader(""))

	err := m.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max depth 2")
	assert.Len(t, m.Stack, 2, "the push that would have exceeded the limit must not land on the stack")
}

func TestPushIsUnboundedWhenMaxStackDepthIsZero(t *testing.T) {
	m, _ := newTestMachine(`
LABEL main
PUSH_CONST int 1
PUSH_CONST int 2
PUSH_CONST int 3
HALT
`, "")
	require.NoError(t, m.Run())
	assert.Len(t, m.Stack, 3)
}
