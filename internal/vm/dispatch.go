package vm

import (
	"fmt"

	"github.com/litlang/litvm/internal/bytecode"
)

// step fetches the line at ip, advances ip past it, and dispatches one
// instruction. ip always ends up pointing at the next line to fetch,
// except that control-flow opcodes leave ip at their target (spec.md §3
// Invariants).
func (m *Machine) step() error {
	ip := m.IP
	raw := m.Lines[ip]
	m.IP++
	m.instrIP = ip

	if bytecode.Blank(raw) {
		return nil
	}
	line, ok := bytecode.ParseLine(raw)
	if !ok {
		return nil
	}

	if m.Config.Trace {
		fmt.Fprintf(m.Stderr, "[ip=%d] %s\n", ip, raw)
	}

	switch line.Op {
	// Constants / arithmetic
	case "PUSH_CONST":
		return m.execPushConst(line)
	case "INC", "DEC":
		return m.execIncDec(line)
	case "ADD", "SUB", "MUL", "DIV", "MOD":
		return m.execArith(line)
	case "ADD_VAR", "SUB_VAR", "MUL_VAR", "DIV_VAR", "MOD_VAR":
		return m.execArithVar(line)
	case "ADD_STR":
		return m.execAddStr(line)

	// Variables
	case "STORE_VAR":
		return m.execStoreVar(line)
	case "LOAD_VAR":
		return m.execLoadVar(line)

	// I/O
	case "PRINT":
		return m.execPrint(line)
	case "INPUT":
		return m.execInput(line)

	// Control flow
	case "LABEL":
		return nil
	case "JUMP":
		return m.jumpToLabel(line.Arg(1))
	case "JUMP_IF_FALSE":
		return m.execJumpIfFalse(line)
	case "CALL":
		return m.execCall(line)
	case "CALL_DYNAMIC":
		return m.execCallDynamic(line)
	case "RET":
		return m.execRet(line)
	case "HALT":
		return m.execHalt(line)
	case "SLEEP":
		return m.execSleep(line)

	// Exceptions
	case "TRY":
		return m.execTry(line)
	case "END_TRY":
		return m.execEndTry(line)
	case "THROW":
		return m.execThrow(line)

	// Classes and objects
	case "NEW":
		return m.execNew(line)
	case "NEW_GENERIC_OBJ":
		return m.execNewGenericObj(line)
	case "INIT_FIELD":
		return m.execInitField(line)
	case "UPDATE_FIELD":
		return m.execUpdateField(line)
	case "LOAD_FIELD":
		return m.execLoadField(line)
	case "LOAD_THIS":
		return m.execLoadThis(line)
	case "SET_STATIC_FIELD":
		return m.execSetStaticField(line)
	case "LOAD_STATIC_FIELD":
		return m.execLoadStaticField(line)
	case "CALL_METHOD":
		return m.execCallMethod(line)
	case "CALL_STATIC_METHOD":
		return m.execCallStaticMethod(line)
	case "CALL_SUPER_METHOD":
		return m.execCallSuperMethod(line)

	// Tuples
	case "NEW_TUPLE":
		return m.execNewTuple(line)
	case "TUPLE_GET":
		return m.execTupleGet(line)
	case "UNPACK_TUPLE":
		return m.execUnpackTuple(line)

	// Arrays
	case "NEW_ARRAY":
		return m.execNewArray(line)
	case "INIT_ARRAY":
		return m.execInitArray(line)
	case "NEW_GENERIC_ARRAY":
		return m.execNewGenericArray(line)
	case "ARRAY_GET":
		return m.execArrayGet(line)
	case "ARRAY_SET":
		return m.execArraySet(line)
	case "ARRAY_LEN":
		return m.execArrayLen(line)

	// Booleans and comparisons
	case "EQ", "NEQ", "LT", "GT", "LTE", "GTE":
		return m.execCompare(line)
	case "AND", "OR":
		return m.execBoolBinary(line)
	case "NOT":
		return m.execNot(line)
	case "TYPE_OF":
		return m.execTypeOf(line)
	case "INSTANCE_OF":
		return m.execInstanceOf(line)

	// Diagnostic
	case "DUMP":
		return m.execDump(line)

	default:
		return m.fault("not a statement: %s", raw)
	}
}
