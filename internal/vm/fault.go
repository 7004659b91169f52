package vm

import "fmt"

// Fault is a VM-level (uncatchable) diagnostic: spec.md §4.6 requires the
// source path, current ip, offending line text, and a message. Grounded
// on errors/errors.go's Error/ErrorType shape, specialised to one kind
// since the VM has no syntax/lexical tiers — only "fatal at this ip".
type Fault struct {
	Path string
	IP   int
	Line string
	Msg  string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s:%d: %s\n    %s", f.Path, f.IP, f.Msg, f.Line)
}

func (m *Machine) fault(format string, args ...interface{}) error {
	ip := m.instrIP
	line := ""
	if ip >= 0 && ip < len(m.Lines) {
		line = m.Lines[ip]
	}
	return &Fault{
		Path: m.Path,
		IP:   ip,
		Line: line,
		Msg:  fmt.Sprintf(format, args...),
	}
}
