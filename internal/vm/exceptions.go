package vm

import (
	"github.com/litlang/litvm/internal/bytecode"
	"github.com/litlang/litvm/internal/value"
)

// execTry loads the caught class (so THROW can compare against a loaded
// class even if it's never otherwise referenced), snapshots the frame
// stack by deep-copying each frame's variable map, and pushes the
// (handler-ip, caught-class, snapshot) triple onto try_stack. The operand
// stack is deliberately not snapshotted (spec.md §5).
func (m *Machine) execTry(line bytecode.Line) error {
	caughtClass := line.Arg(1)
	handlerLabel := line.Arg(2)

	if _, err := m.Loader.Load(caughtClass); err != nil {
		return m.fault("%v", err)
	}
	target, ok := m.Labels[handlerLabel]
	if !ok {
		return m.fault("catch label not found: %s", handlerLabel)
	}

	m.TryStack = append(m.TryStack, TryEntry{
		HandlerIP:   target + 1,
		CaughtClass: caughtClass,
		Frames:      m.snapshotFrames(),
	})
	return nil
}

func (m *Machine) execEndTry(line bytecode.Line) error {
	if len(m.TryStack) == 0 {
		return m.fault("END_TRY used without TRY")
	}
	m.TryStack = m.TryStack[:len(m.TryStack)-1]
	return nil
}

// execThrow pops an object (whose `description` field must hold a str),
// then unwinds try_stack looking for an entry whose CaughtClass matches
// the thrown object's class name exactly (spec.md §4.5, §9: no subtype
// widening — matches original_source/vm/lvm.py literally). On a match,
// the frame stack is restored from the snapshot, `this` is set to the
// thrown object, and ip jumps to the handler. No match aborts the
// process with a diagnostic naming the exception class and description.
func (m *Machine) execThrow(line bytecode.Line) error {
	thrown, err := m.popTag(value.TagObject)
	if err != nil {
		return err
	}
	if thrown.Obj == nil {
		return m.fault("cannot throw null")
	}
	descField, ok := thrown.Obj.Fields["description"]
	if !ok || !descField.Present || descField.Value.Tag != value.TagStr {
		return m.fault("class %s is not an exception class (missing description: str)", thrown.Obj.ClassName)
	}

	for len(m.TryStack) > 0 {
		n := len(m.TryStack)
		entry := m.TryStack[n-1]
		m.TryStack = m.TryStack[:n-1]

		if entry.CaughtClass == thrown.Obj.ClassName {
			m.Frames = entry.Frames
			m.IP = entry.HandlerIP
			m.This = &thrown
			return nil
		}
	}

	return m.fault("uncaught exception: %s: %s", thrown.Obj.ClassName, descField.Value.Str)
}
