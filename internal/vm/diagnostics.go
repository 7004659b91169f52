package vm

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
	"golang.org/x/exp/maps"

	"github.com/litlang/litvm/internal/bytecode"
)

// execDump implements the DUMP diagnostic instruction: ip, the operand
// stack, every frame, the try stack, and every loaded class — all to
// Stderr (see SPEC_FULL.md §6 for why this implementation diverges from
// the source's stdout and sends diagnostics to Stderr instead).
func (m *Machine) execDump(line bytecode.Line) error {
	m.renderDiagnostic("DUMP")
	return nil
}

// renderDiagnostic is shared by DUMP and HALT: both print the same
// stack/frame/try-stack/class snapshot, stamped with a humanize/strftime
// header.
func (m *Machine) renderDiagnostic(reason string) {
	stamp, err := strftime.Format("%Y-%m-%d %H:%M:%S", time.Now())
	if err != nil {
		stamp = time.Now().Format("2006-01-02 15:04:05")
	}
	fmt.Fprintf(m.Stderr, "[%s @ %s] ip=%d program=%s lines\n",
		reason, stamp, m.IP, humanize.Comma(int64(len(m.Lines))))

	fmt.Fprintln(m.Stderr, "[STACK]")
	if len(m.Stack) == 0 {
		fmt.Fprintln(m.Stderr, "  (empty)")
	}
	for i, v := range m.Stack {
		fmt.Fprintf(m.Stderr, "  [%d] %s: %s\n", i, v.Tag, formatPrint(v))
	}

	fmt.Fprintln(m.Stderr, "[FRAMES]")
	if len(m.Frames) == 0 {
		fmt.Fprintln(m.Stderr, "  (empty)")
	}
	for depth, frame := range m.Frames {
		names := maps.Keys(frame)
		sort.Strings(names)
		for _, name := range names {
			v := frame[name]
			fmt.Fprintf(m.Stderr, "  frame[%d].%s = %s: %s\n", depth, name, v.Tag, formatPrint(v))
		}
	}

	fmt.Fprintln(m.Stderr, "[TRY_STACK]")
	if len(m.TryStack) == 0 {
		fmt.Fprintln(m.Stderr, "  (empty)")
	}
	for i, entry := range m.TryStack {
		fmt.Fprintf(m.Stderr, "  [%d] catch=%s handler_ip=%d\n", i, entry.CaughtClass, entry.HandlerIP)
	}

	fmt.Fprintln(m.Stderr, "[CLASSES]")
	names := maps.Keys(m.Loader.Classes)
	sort.Strings(names)
	for _, name := range names {
		cls := m.Loader.Classes[name]
		fmt.Fprintf(m.Stderr, "  %s: super=%q interfaces=%v fields=%v methods=%v\n",
			name, cls.SuperClass, cls.Interfaces, cls.FieldOrder, cls.MethodOrder)
	}
}
