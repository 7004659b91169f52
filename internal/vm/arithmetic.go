package vm

import (
	"math"
	"strconv"
	"strings"

	"github.com/litlang/litvm/internal/bytecode"
	"github.com/litlang/litvm/internal/value"
)

func (m *Machine) execPushConst(line bytecode.Line) error {
	dtype := line.Arg(1)
	raw := line.Arg(2)

	switch dtype {
	case "int":
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return m.fault("bad int literal: %s", raw)
		}
		return m.push(value.Int(i))
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return m.fault("bad float literal: %s", raw)
		}
		return m.push(value.Float(f))
	case "bool":
		return m.push(value.Bool(strings.EqualFold(raw, "true")))
	case "str":
		return m.push(value.Str(bytecode.UnescapeStr(strings.Trim(raw, `"`))))
	case "lambda":
		return m.push(value.Lambda(raw))
	case "object":
		if raw != "null" {
			return m.fault("unsupported object constant: %s", raw)
		}
		return m.push(value.NullObject())
	default:
		return m.fault("unknown PUSH_CONST dtype: %s", dtype)
	}
}

func (m *Machine) execIncDec(line bytecode.Line) error {
	v, err := m.pop()
	if err != nil {
		return err
	}
	if !v.Tag.Numeric() {
		return m.fault("cannot increment or decrement non-numeric value")
	}
	delta := int64(1)
	if line.Op == "DEC" {
		delta = -1
	}
	if v.Tag == value.TagFloat {
		return m.push(value.Float(v.Float + float64(delta)))
	}
	return m.push(value.Int(v.Int + delta))
}

// applyArith performs ADD/SUB/MUL/DIV/MOD with the source's promotion
// rule: float if either operand is float, else int. Division by zero is
// fatal rather than specially handled, matching spec.md §4.5.
func applyArith(m *Machine, op string, a, b value.Value) (value.Value, error) {
	if a.Tag == value.TagFloat || b.Tag == value.TagFloat {
		af, bf := a.Numeric(), b.Numeric()
		switch op {
		case "ADD":
			return value.Float(af + bf), nil
		case "SUB":
			return value.Float(af - bf), nil
		case "MUL":
			return value.Float(af * bf), nil
		case "DIV":
			if bf == 0 {
				return value.Value{}, m.fault("division by zero")
			}
			return value.Float(af / bf), nil
		case "MOD":
			if bf == 0 {
				return value.Value{}, m.fault("division by zero")
			}
			return value.Float(math.Mod(af, bf)), nil
		}
	}

	ai, bi := a.Int, b.Int
	switch op {
	case "ADD":
		return value.Int(ai + bi), nil
	case "SUB":
		return value.Int(ai - bi), nil
	case "MUL":
		return value.Int(ai * bi), nil
	case "DIV":
		if bi == 0 {
			return value.Value{}, m.fault("division by zero")
		}
		return value.Int(ai / bi), nil
	case "MOD":
		if bi == 0 {
			return value.Value{}, m.fault("division by zero")
		}
		return value.Int(ai % bi), nil
	}
	return value.Value{}, m.fault("unreachable arithmetic op: %s", op)
}

func (m *Machine) execArith(line bytecode.Line) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	if !a.Tag.Numeric() || !b.Tag.Numeric() {
		return m.fault("type error: %s %s %s", a.Tag, line.Op, b.Tag)
	}
	result, err := applyArith(m, line.Op, a, b)
	if err != nil {
		return err
	}
	return m.push(result)
}

// execArithVar implements ADD_VAR/SUB_VAR/MUL_VAR/DIV_VAR/MOD_VAR: the
// result is stored back into the variable, never pushed to the stack.
// A str variable only accepts ADD_VAR (concatenation, coercing a
// non-string operand); MOD_VAR between two floats is fatal.
func (m *Machine) execArithVar(line bytecode.Line) error {
	varName := line.Arg(1)
	frame := m.currentFrame()
	a, ok := frame[varName]
	if !ok {
		return m.fault("undefined variable: %s", varName)
	}
	b, err := m.pop()
	if err != nil {
		return err
	}

	if a.Tag == value.TagStr {
		if line.Op != "ADD_VAR" {
			return m.fault("cannot use %s on str", line.Op)
		}
		bs := b.Str
		if b.Tag != value.TagStr {
			bs = b.Stringify()
		}
		frame[varName] = value.Str(a.Str + bs)
		return nil
	}

	if !a.Tag.Numeric() || !b.Tag.Numeric() {
		return m.fault("type error: %s %s %s", a.Tag, line.Op, b.Tag)
	}
	if line.Op == "MOD_VAR" && a.Tag == value.TagFloat && b.Tag == value.TagFloat {
		return m.fault("cannot use %%= with float")
	}

	op := strings.TrimSuffix(line.Op, "_VAR")
	result, err := applyArith(m, op, a, b)
	if err != nil {
		return err
	}
	frame[varName] = result
	return nil
}

func (m *Machine) execAddStr(line bytecode.Line) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	as := a.Str
	if a.Tag != value.TagStr {
		as = a.Stringify()
	}
	bs := b.Str
	if b.Tag != value.TagStr {
		bs = b.Stringify()
	}
	return m.push(value.Str(as + bs))
}
