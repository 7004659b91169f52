package vm

import (
	"strconv"
	"strings"

	"github.com/litlang/litvm/internal/bytecode"
	"github.com/litlang/litvm/internal/value"
)

func (m *Machine) execNewArray(line bytecode.Line) error {
	elemType := line.Arg(1)
	size, err := m.popTag(value.TagInt)
	if err != nil {
		return err
	}
	if size.Int < 0 {
		return m.fault("negative array size")
	}
	return m.push(value.Arr(&value.Array{
		ElemType: elemType,
		Slots:    make([]value.Slot, size.Int),
	}))
}

// execInitArray builds an array from literal tokens. The instruction's
// field layout is INIT_ARRAY elem_type <unused> <unused> v0 v1 … — fields
// 2 and 3 are textual-encoding placeholders in the source and are not
// consulted; the real element count comes from the int popped off the
// stack (see SPEC_FULL.md §4).
func (m *Machine) execInitArray(line bytecode.Line) error {
	elemType := line.Arg(1)
	size, err := m.popTag(value.TagInt)
	if err != nil {
		return err
	}

	var literals []string
	if len(line.Fields) > 4 {
		literals = line.Fields[4:]
	}
	if int64(len(literals)) > size.Int {
		return m.fault("found more elements than expected: %d", len(literals))
	}

	slots := make([]value.Slot, size.Int)
	for i, raw := range literals {
		v, err := parseArrayLiteral(elemType, raw)
		if err != nil {
			return m.fault("%v", err)
		}
		slots[i] = value.Slot{Present: true, Value: v}
	}
	return m.push(value.Arr(&value.Array{ElemType: elemType, Slots: slots}))
}

func parseArrayLiteral(elemType, raw string) (value.Value, error) {
	switch elemType {
	case "int":
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(i), nil
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return value.Value{}, err
		}
		return value.Float(f), nil
	case "bool":
		return value.Bool(strings.EqualFold(raw, "true")), nil
	default:
		return value.Str(bytecode.UnescapeStr(strings.Trim(raw, `"`))), nil
	}
}

func (m *Machine) execNewGenericArray(line bytecode.Line) error {
	gname := line.Arg(1)
	objVal, err := m.popTag(value.TagObject)
	if err != nil {
		return err
	}
	if objVal.Obj == nil {
		return m.fault("expected LOAD_THIS before NEW_GENERIC_ARRAY")
	}
	size, err := m.popTag(value.TagInt)
	if err != nil {
		return err
	}
	elemType, ok := objVal.Obj.GenericMap[gname]
	if !ok {
		return m.fault("unknown generic parameter: %s", gname)
	}
	return m.push(value.Arr(&value.Array{
		ElemType: elemType,
		Slots:    make([]value.Slot, size.Int),
	}))
}

func (m *Machine) execArrayGet(line bytecode.Line) error {
	arrVal, err := m.popTag(value.TagArray)
	if err != nil {
		return err
	}
	idxVal, err := m.popTag(value.TagInt)
	if err != nil {
		return err
	}
	idx := idxVal.Int
	if idx < 0 || idx >= int64(len(arrVal.Array.Slots)) {
		return m.fault("index out of range: %d, length of array: %d", idx, len(arrVal.Array.Slots))
	}
	slot := arrVal.Array.Slots[idx]
	if !slot.Present {
		return m.fault("array element at index %d is uninitialized", idx)
	}
	return m.push(slot.Value)
}

func (m *Machine) execArraySet(line bytecode.Line) error {
	arrVal, err := m.popTag(value.TagArray)
	if err != nil {
		return err
	}
	val, err := m.pop()
	if err != nil {
		return err
	}
	idxVal, err := m.popTag(value.TagInt)
	if err != nil {
		return err
	}
	if val.Tag.String() != arrVal.Array.ElemType {
		return m.fault("type mismatch: expected %s, got %s", arrVal.Array.ElemType, val.Tag)
	}
	idx := idxVal.Int
	if idx < 0 || idx >= int64(len(arrVal.Array.Slots)) {
		return m.fault("index out of range: %d, length of array: %d", idx, len(arrVal.Array.Slots))
	}
	arrVal.Array.Slots[idx] = value.Slot{Present: true, Value: val}
	return nil
}

func (m *Machine) execArrayLen(line bytecode.Line) error {
	arrVal, err := m.popTag(value.TagArray)
	if err != nil {
		return err
	}
	return m.push(value.Int(int64(len(arrVal.Array.Slots))))
}
