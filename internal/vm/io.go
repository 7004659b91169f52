package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/litlang/litvm/internal/bytecode"
	"github.com/litlang/litvm/internal/value"
)

// execPrint pops one value and writes it to Stdout with a trailing
// newline, using type-specific formatting (spec.md §4.5). An empty stack
// prints a bare newline, matching original_source/vm/lvm.py's
// `dtype, value = 'str', '\n'` fallback.
func (m *Machine) execPrint(line bytecode.Line) error {
	if len(m.Stack) == 0 {
		fmt.Fprintln(m.Stdout)
		return nil
	}
	v, err := m.pop()
	if err != nil {
		return err
	}
	fmt.Fprintln(m.Stdout, formatPrint(v))
	return nil
}

func formatPrint(v value.Value) string {
	switch v.Tag {
	case value.TagBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case value.TagArray:
		return formatArray(v.Array)
	case value.TagObject:
		if v.Obj == nil {
			return "null"
		}
		return formatObject(v.Obj)
	case value.TagTuple:
		parts := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			parts[i] = formatPrint(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case value.TagStr:
		return v.Str
	case value.TagLambda:
		return v.Lambda
	case value.TagInt:
		return strconv.FormatInt(v.Int, 10)
	case value.TagFloat:
		return value.Value{Tag: value.TagFloat, Float: v.Float}.Stringify()
	default:
		return ""
	}
}

func formatArray(a *value.Array) string {
	parts := make([]string, len(a.Slots))
	for i, s := range a.Slots {
		if !s.Present {
			parts[i] = "<uninit>"
			continue
		}
		parts[i] = formatPrint(s.Value)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatObject(o *value.Object) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s#%s{", o.ClassName, o.ID.String()[:8])
	for i, name := range o.FieldOrder {
		if i > 0 {
			b.WriteString(", ")
		}
		f := o.Fields[name]
		if !f.Present {
			fmt.Fprintf(&b, "%s: <uninit>", name)
			continue
		}
		fmt.Fprintf(&b, "%s: %s", name, formatPrint(f.Value))
	}
	b.WriteString("}")
	return b.String()
}

// execInput reads one line from Stdin, parses it per dtype, and pushes
// the result. A bad parse is fatal (spec.md §4.5).
func (m *Machine) execInput(line bytecode.Line) error {
	dtype := line.Arg(1)
	if prompt := line.Arg(2); prompt != "" {
		fmt.Fprint(m.Stdout, strings.Trim(prompt, `"`))
	}

	raw, err := m.Stdin.ReadString('\n')
	raw = strings.TrimRight(raw, "\r\n")
	if err != nil && raw == "" {
		return m.fault("input failed: %v", err)
	}

	switch dtype {
	case "int":
		i, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			return m.fault("invalid int input")
		}
		return m.push(value.Int(i))
	case "float":
		f, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			return m.fault("invalid float input")
		}
		return m.push(value.Float(f))
	case "bool":
		lower := strings.ToLower(raw)
		truthy := lower == "true" || lower == "1" || lower == "y" || lower == "yes"
		return m.push(value.Bool(truthy))
	default:
		return m.push(value.Str(raw))
	}
}
