// Package vm is the Lit bytecode interpreter: instruction dispatch, the
// class loader, static-initialiser driver, exception unwinding, and the
// object/array/tuple operations. Grounded throughout on
// compiler/vm/vm.go's ExecutionContext + opcode-dispatch shape from the
// teacher repo, generalised to the Lit instruction set and textual
// bytecode format defined by original_source/vm/lvm.py.
package vm

import (
	"bufio"
	"io"
	"os"

	"github.com/litlang/litvm/internal/bytecode"
	"github.com/litlang/litvm/internal/class"
	"github.com/litlang/litvm/internal/value"
	"github.com/litlang/litvm/internal/vmconfig"
)

// Frame is a per-activation mapping of local variable names to values.
type Frame map[string]value.Value

func (f Frame) clone() Frame {
	out := make(Frame, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// TryEntry is one entry of the try_stack: the handler's jump target, the
// caught class name, and the frame-stack snapshot taken at TRY.
type TryEntry struct {
	HandlerIP   int
	CaughtClass string
	Frames      []Frame
}

// Machine is one Lit VM execution: program, instruction pointer, operand
// stack, frame stack, call stack, try stack, current `this`, and the
// lazy class loader. A Machine is not safe for concurrent use — the VM is
// single-threaded by design (spec.md §5).
type Machine struct {
	Path           string
	Lines          []string
	Labels         map[string]int
	ClassPositions map[string]int
	Loader         *class.Loader

	IP        int
	instrIP   int // ip of the instruction currently dispatching, for fault()
	Stack     []value.Value
	Frames    []Frame
	CallStack []int
	TryStack  []TryEntry
	This      *value.Value

	Config vmconfig.Config

	Stdout io.Writer
	Stderr io.Writer
	Stdin  *bufio.Reader

	halted   bool
	exitCode int
}

// NewMachine builds a Machine over an already-loaded program (one string
// per line, no trailing newlines required).
func NewMachine(path string, lines []string, cfg vmconfig.Config) *Machine {
	labels, classPositions := index(lines)
	return &Machine{
		Path:           path,
		Lines:          lines,
		Labels:         labels,
		ClassPositions: classPositions,
		Loader:         class.NewLoader(lines, classPositions),
		Frames:         []Frame{make(Frame)},
		Config:         cfg,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Stdin:          bufio.NewReader(os.Stdin),
	}
}

// ExitCode returns the code a HALT opcode (or normal fall-through)
// terminated with.
func (m *Machine) ExitCode() int { return m.exitCode }

// Halted reports whether HALT has already run.
func (m *Machine) Halted() bool { return m.halted }

// Step executes exactly one instruction — exported so the REPL can drive
// the dispatch core one typed line at a time.
func (m *Machine) Step() error { return m.step() }

// AppendAndStep appends one line of raw bytecode text to the end of the
// program, re-indexes labels/classes over the grown program, positions
// ip at the new line, and executes it. Used by the REPL stub (see
// SPEC_FULL.md §6) to evaluate one instruction at a time against a
// persistent Machine.
func (m *Machine) AppendAndStep(raw string) error {
	m.Lines = append(m.Lines, raw)
	labels, classPositions := index(m.Lines)
	m.Labels = labels
	m.ClassPositions = classPositions
	m.Loader.Lines = m.Lines
	m.Loader.ClassPositions = classPositions
	m.IP = len(m.Lines) - 1
	return m.step()
}

// currentFrame returns the top of the frame stack — "current" per
// spec.md §3.
func (m *Machine) currentFrame() Frame {
	return m.Frames[len(m.Frames)-1]
}

func (m *Machine) pushFrame(f Frame) {
	m.Frames = append(m.Frames, f)
}

func (m *Machine) popFrame() Frame {
	n := len(m.Frames)
	f := m.Frames[n-1]
	m.Frames = m.Frames[:n-1]
	return f
}

func (m *Machine) push(v value.Value) error {
	if m.Config.MaxStackDepth > 0 && len(m.Stack) >= m.Config.MaxStackDepth {
		return m.fault("operand stack exceeded max depth %d", m.Config.MaxStackDepth)
	}
	m.Stack = append(m.Stack, v)
	return nil
}

func (m *Machine) pop() (value.Value, error) {
	n := len(m.Stack)
	if n == 0 {
		return value.Value{}, m.fault("stack underflow")
	}
	v := m.Stack[n-1]
	m.Stack = m.Stack[:n-1]
	return v, nil
}

func (m *Machine) popTag(tag value.Tag) (value.Value, error) {
	v, err := m.pop()
	if err != nil {
		return value.Value{}, err
	}
	if v.Tag != tag {
		return value.Value{}, m.fault("expected %s, got %s", tag, v.Tag)
	}
	return v, nil
}

func (m *Machine) snapshotFrames() []Frame {
	out := make([]Frame, len(m.Frames))
	for i, f := range m.Frames {
		out[i] = f.clone()
	}
	return out
}

// Run loads label `main` as the entry point and interprets until the
// program falls off the end, HALT exits, or a fault / uncaught THROW
// terminates it.
func (m *Machine) Run() error {
	start, ok := m.Labels["main"]
	if !ok {
		return m.fault("entry label \"main\" not found")
	}
	m.IP = start + 1

	for m.IP < len(m.Lines) {
		if m.halted {
			return nil
		}
		if err := m.step(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) jumpToLabel(name string) error {
	target, ok := m.Labels[name]
	if !ok {
		return m.fault("cannot find label: %s", name)
	}
	m.IP = target + 1
	return nil
}

// lineAt returns the tokenised line at ip; ok is false when ip is out of
// range or the line is blank or a comment.
func (m *Machine) lineAt(ip int) (bytecode.Line, bool) {
	if ip < 0 || ip >= len(m.Lines) {
		return bytecode.Line{}, false
	}
	return bytecode.ParseLine(m.Lines[ip])
}
