package vm

import (
	"strconv"
	"time"

	"github.com/litlang/litvm/internal/bytecode"
	"github.com/litlang/litvm/internal/value"
)

func (m *Machine) execJumpIfFalse(line bytecode.Line) error {
	label := line.Arg(1)
	if _, ok := m.Labels[label]; !ok {
		return m.fault("cannot find label: %s", label)
	}
	cond, err := m.popTag(value.TagBool)
	if err != nil {
		return err
	}
	if !cond.Bool {
		return m.jumpToLabel(label)
	}
	return nil
}

func (m *Machine) execCall(line bytecode.Line) error {
	name := line.Arg(1)
	if _, ok := m.Labels[name]; !ok {
		return m.fault("function not found: %s", name)
	}
	m.CallStack = append(m.CallStack, m.IP)
	m.pushFrame(make(Frame))
	return m.jumpToLabel(name)
}

func (m *Machine) execCallDynamic(line bytecode.Line) error {
	lambda, err := m.popTag(value.TagLambda)
	if err != nil {
		return err
	}
	if _, ok := m.Labels[lambda.Lambda]; !ok {
		return m.fault("lambda not found: %s", lambda.Lambda)
	}
	m.CallStack = append(m.CallStack, m.IP)
	m.pushFrame(make(Frame))
	return m.jumpToLabel(lambda.Lambda)
}

func (m *Machine) execRet(line bytecode.Line) error {
	if len(m.CallStack) == 0 {
		return m.fault("RET without matching CALL")
	}
	m.popFrame()
	n := len(m.CallStack)
	m.IP = m.CallStack[n-1]
	m.CallStack = m.CallStack[:n-1]
	return nil
}

func (m *Machine) execHalt(line bytecode.Line) error {
	code := 0
	if line.HasArg(1) {
		n, err := strconv.Atoi(line.Arg(1))
		if err != nil {
			return m.fault("bad HALT exit code: %s", line.Arg(1))
		}
		code = n
	}
	m.renderDiagnostic("HALT")
	m.halted = true
	m.exitCode = code
	return nil
}

func (m *Machine) execSleep(line bytecode.Line) error {
	ms, err := m.popTag(value.TagInt)
	if err != nil {
		return err
	}
	time.Sleep(time.Duration(ms.Int) * time.Millisecond)
	return nil
}
