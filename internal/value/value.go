// Package value implements the Lit VM's tagged value model: the runtime
// representation shared by the operand stack, frame locals, object fields,
// and static-field cells.
package value

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Tag identifies the runtime type carried by a Value.
type Tag byte

const (
	TagInt Tag = iota
	TagFloat
	TagBool
	TagStr
	TagLambda
	TagObject
	TagTuple
	TagArray
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagBool:
		return "bool"
	case TagStr:
		return "str"
	case TagLambda:
		return "lambda"
	case TagObject:
		return "object"
	case TagTuple:
		return "tuple"
	case TagArray:
		return "array"
	default:
		return "unknown"
	}
}

// Numeric reports whether the tag participates in arithmetic promotion.
func (t Tag) Numeric() bool {
	return t == TagInt || t == TagFloat
}

// Value is the tagged union every stack slot, local variable, and field
// cell holds. Exactly one of the typed payload fields is meaningful,
// selected by Tag.
type Value struct {
	Tag    Tag
	Int    int64
	Float  float64
	Bool   bool
	Str    string
	Lambda string
	Obj    *Object
	Tuple  []Value
	Array  *Array
}

// Array is a mutable, element-typed sequence. A slot may be Present=false,
// meaning "uninitialised" (constructed by NEW_ARRAY/NEW_GENERIC_ARRAY but
// never written via ARRAY_SET).
type Array struct {
	ElemType string
	Slots    []Slot
}

// Slot is one element of an Array; Present distinguishes "never written"
// from a zero-valued element.
type Slot struct {
	Present bool
	Value   Value
}

// Object is a heap-allocated instance of a loaded class. Shared-reference
// semantics: copying an Object pointer never copies Fields.
type Object struct {
	ID         uuid.UUID
	ClassName  string
	GenericMap map[string]string // generic parameter name -> concrete type/class name
	FieldOrder []string
	Fields     map[string]*Field
}

// Field is a declared-typed, possibly-uninitialised object field cell.
type Field struct {
	DeclaredType string
	Present      bool
	Value        Value
}

func Int(i int64) Value     { return Value{Tag: TagInt, Int: i} }
func Float(f float64) Value { return Value{Tag: TagFloat, Float: f} }
func Bool(b bool) Value     { return Value{Tag: TagBool, Bool: b} }
func Str(s string) Value    { return Value{Tag: TagStr, Str: s} }
func Lambda(l string) Value { return Value{Tag: TagLambda, Lambda: l} }
func NullObject() Value     { return Value{Tag: TagObject, Obj: nil} }
func Tup(items []Value) Value {
	return Value{Tag: TagTuple, Tuple: items}
}
func Obj(o *Object) Value { return Value{Tag: TagObject, Obj: o} }
func Arr(a *Array) Value  { return Value{Tag: TagArray, Array: a} }

// NewObject allocates a zero-valued object of class with the given declared
// field types, in declaration order.
func NewObject(className string, fieldOrder []string, fieldTypes map[string]string) *Object {
	fields := make(map[string]*Field, len(fieldOrder))
	for _, name := range fieldOrder {
		fields[name] = &Field{DeclaredType: fieldTypes[name]}
	}
	return &Object{
		ID:         uuid.New(),
		ClassName:  className,
		FieldOrder: append([]string(nil), fieldOrder...),
		Fields:     fields,
	}
}

// IsNull reports whether v is the literal `null` object.
func (v Value) IsNull() bool {
	return v.Tag == TagObject && v.Obj == nil
}

// Numeric returns the value's float64 view for arithmetic; callers must
// have already checked Tag.Numeric().
func (v Value) Numeric() float64 {
	if v.Tag == TagFloat {
		return v.Float
	}
	return float64(v.Int)
}

// Stringify renders a Value as ADD_STR / ADD_VAR's implicit string
// coercion would: not the same as Print, which has type-specific dumping
// rules for arrays/objects/tuples/bools.
func (v Value) Stringify() string {
	switch v.Tag {
	case TagInt:
		return fmt.Sprintf("%d", v.Int)
	case TagFloat:
		return formatFloat(v.Float)
	case TagBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case TagStr:
		return v.Str
	case TagLambda:
		return v.Lambda
	case TagObject:
		if v.Obj == nil {
			return "null"
		}
		return v.Obj.ClassName
	case TagTuple:
		parts := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			parts[i] = e.Stringify()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TagArray:
		return "array"
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
