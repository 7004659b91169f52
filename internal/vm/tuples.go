package vm

import (
	"strconv"

	"github.com/litlang/litvm/internal/bytecode"
	"github.com/litlang/litvm/internal/value"
)

// execNewTuple pops n values, preserves their original (pushed) order,
// and pushes them back as one tuple.
func (m *Machine) execNewTuple(line bytecode.Line) error {
	n, err := strconv.Atoi(line.Arg(1))
	if err != nil || n < 0 {
		return m.fault("bad NEW_TUPLE count: %s", line.Arg(1))
	}
	if len(m.Stack) < n {
		return m.fault("stack underflow")
	}
	items := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, _ := m.pop()
		items[i] = v
	}
	return m.push(value.Tup(items))
}

func (m *Machine) execTupleGet(line bytecode.Line) error {
	idx, err := strconv.Atoi(line.Arg(1))
	if err != nil {
		return m.fault("bad TUPLE_GET index: %s", line.Arg(1))
	}
	tup, err := m.popTag(value.TagTuple)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(tup.Tuple) {
		return m.fault("index out of range: %d, length is %d", idx, len(tup.Tuple))
	}
	return m.push(tup.Tuple[idx])
}

// execUnpackTuple pushes a tuple's elements in reverse order so the
// first element ends up on top of the stack.
func (m *Machine) execUnpackTuple(line bytecode.Line) error {
	tup, err := m.popTag(value.TagTuple)
	if err != nil {
		return err
	}
	for i := len(tup.Tuple) - 1; i >= 0; i-- {
		if err := m.push(tup.Tuple[i]); err != nil {
			return err
		}
	}
	return nil
}
