package vm

import (
	"fmt"

	"github.com/litlang/litvm/internal/bytecode"
	"github.com/litlang/litvm/internal/value"
)

// execCompare implements EQ/NEQ/LT/GT/LTE/GTE. The source requires
// identical tags and treats a tag mismatch as fatal rather than false —
// spec.md §9 leaves this as an Open Question; this implementation
// resolves it by matching the source exactly (see SPEC_FULL.md §4).
func (m *Machine) execCompare(line bytecode.Line) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	if a.Tag != b.Tag {
		return m.fault("type mismatch in compare: %s vs %s", a.Tag, b.Tag)
	}

	result, err := compareValues(line.Op, a, b)
	if err != nil {
		return m.fault("%v", err)
	}
	return m.push(value.Bool(result))
}

type ordered interface {
	~int64 | ~float64 | ~string
}

func compareOrdered[T ordered](op string, a, b T) bool {
	switch op {
	case "EQ":
		return a == b
	case "NEQ":
		return a != b
	case "LT":
		return a < b
	case "GT":
		return a > b
	case "LTE":
		return a <= b
	case "GTE":
		return a >= b
	}
	return false
}

func compareEquality(op string, eq bool) bool {
	switch op {
	case "EQ":
		return eq
	case "NEQ":
		return !eq
	default:
		return false
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// compareValues assumes a.Tag == b.Tag (execCompare's precondition) and
// dispatches every op the matching-tag case supports, recursing into
// tuple/array elements. Bool and lambda support the full ordering set
// (the source happily orders bools-as-ints and label strings, not just
// equality); object only supports EQ/NEQ, by Go pointer identity — a
// deliberate divergence from the source's structural dict equality, see
// DESIGN.md.
func compareValues(op string, a, b value.Value) (bool, error) {
	switch a.Tag {
	case value.TagInt:
		return compareOrdered(op, a.Int, b.Int), nil
	case value.TagFloat:
		return compareOrdered(op, a.Float, b.Float), nil
	case value.TagStr:
		return compareOrdered(op, a.Str, b.Str), nil
	case value.TagLambda:
		return compareOrdered(op, a.Lambda, b.Lambda), nil
	case value.TagBool:
		return compareOrdered(op, boolToInt(a.Bool), boolToInt(b.Bool)), nil
	case value.TagObject:
		if op != "EQ" && op != "NEQ" {
			return false, fmt.Errorf("type %s does not support %s", a.Tag, op)
		}
		return compareEquality(op, a.Obj == b.Obj), nil
	case value.TagTuple:
		return compareSequence(op, a.Tuple, b.Tuple)
	case value.TagArray:
		return compareSequence(op, arrayValues(a.Array), arrayValues(b.Array))
	default:
		return false, fmt.Errorf("type %s does not support %s", a.Tag, op)
	}
}

func arrayValues(a *value.Array) []value.Value {
	out := make([]value.Value, len(a.Slots))
	for i, s := range a.Slots {
		out[i] = s.Value
	}
	return out
}

// compareSequence implements tuple/array EQ/NEQ (structural, elementwise)
// and LT/GT/LTE/GTE (Python-style lexicographic ordering: the first
// differing element decides; a sequence that runs out first is the
// smaller one).
func compareSequence(op string, a, b []value.Value) (bool, error) {
	switch op {
	case "EQ", "NEQ":
		eq, err := sequenceEqual(a, b)
		if err != nil {
			return false, err
		}
		return compareEquality(op, eq), nil
	case "LT", "GT", "LTE", "GTE":
		return sequenceLess(op, a, b)
	}
	return false, fmt.Errorf("unsupported compare op: %s", op)
}

func sequenceEqual(a, b []value.Value) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	for i := range a {
		if a[i].Tag != b[i].Tag {
			return false, nil
		}
		eq, err := compareValues("EQ", a[i], b[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func sequenceLess(op string, a, b []value.Value) (bool, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].Tag != b[i].Tag {
			return false, fmt.Errorf("type mismatch in compare: %s vs %s", a[i].Tag, b[i].Tag)
		}
		eq, err := compareValues("EQ", a[i], b[i])
		if err != nil {
			return false, err
		}
		if eq {
			continue
		}
		lt, err := compareValues("LT", a[i], b[i])
		if err != nil {
			return false, err
		}
		switch op {
		case "LT", "LTE":
			return lt, nil
		default: // GT, GTE
			return !lt, nil
		}
	}
	switch op {
	case "LT":
		return len(a) < len(b), nil
	case "LTE":
		return len(a) <= len(b), nil
	case "GT":
		return len(a) > len(b), nil
	default: // GTE
		return len(a) >= len(b), nil
	}
}

func (m *Machine) execBoolBinary(line bytecode.Line) error {
	b, err := m.popTag(value.TagBool)
	if err != nil {
		return err
	}
	a, err := m.popTag(value.TagBool)
	if err != nil {
		return err
	}
	var result bool
	if line.Op == "AND" {
		result = a.Bool && b.Bool
	} else {
		result = a.Bool || b.Bool
	}
	return m.push(value.Bool(result))
}

func (m *Machine) execNot(line bytecode.Line) error {
	v, err := m.popTag(value.TagBool)
	if err != nil {
		return err
	}
	return m.push(value.Bool(!v.Bool))
}

// execTypeOf pushes true iff the popped value's tag equals the target and
// the tag is one of the primitive types (not object/tuple/array).
func (m *Machine) execTypeOf(line bytecode.Line) error {
	target := line.Arg(1)
	v, err := m.pop()
	if err != nil {
		return err
	}
	switch v.Tag {
	case value.TagInt, value.TagFloat, value.TagBool, value.TagStr, value.TagLambda:
		return m.push(value.Bool(v.Tag.String() == target))
	default:
		return m.push(value.Bool(false))
	}
}

func (m *Machine) execInstanceOf(line bytecode.Line) error {
	target := line.Arg(1)
	objVal, err := m.popTag(value.TagObject)
	if err != nil {
		return err
	}
	if _, err := m.Loader.Load(target); err != nil {
		return m.fault("%v", err)
	}
	if objVal.Obj == nil {
		return m.push(value.Bool(false))
	}
	cls, err := m.Loader.Load(objVal.Obj.ClassName)
	if err != nil {
		return m.fault("%v", err)
	}
	return m.push(value.Bool(cls.ImplementsTransitively(target, m.Loader.Classes)))
}
