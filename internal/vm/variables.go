package vm

import "github.com/litlang/litvm/internal/bytecode"

func (m *Machine) execStoreVar(line bytecode.Line) error {
	v, err := m.pop()
	if err != nil {
		return err
	}
	m.currentFrame()[line.Arg(1)] = v
	return nil
}

func (m *Machine) execLoadVar(line bytecode.Line) error {
	name := line.Arg(1)
	v, ok := m.currentFrame()[name]
	if !ok {
		return m.fault("undefined variable: %s", name)
	}
	return m.push(v)
}
