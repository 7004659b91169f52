package vm

import (
	"os"
	"strings"

	"github.com/litlang/litvm/internal/vmconfig"
)

// LoadFile reads a .lbc program from disk, splitting it into lines, and
// builds a ready-to-Run Machine.
func LoadFile(path string, cfg vmconfig.Config) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	return NewMachine(path, lines, cfg), nil
}
