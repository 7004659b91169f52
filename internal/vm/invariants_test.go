package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litlang/litvm/internal/value"
)

func TestStoreLoadVarRoundTrips(t *testing.T) {
	machine, _ := newTestMachine(`
LABEL main
PUSH_CONST int 9
STORE_VAR x
LOAD_VAR x
HALT
`, "")
	require.NoError(t, machine.Run())
	require.Len(t, machine.Stack, 1)
	assert.Equal(t, value.Int(9), machine.Stack[0])
}

func TestCallRetLeavesFrameStackBalanced(t *testing.T) {
	machine, _ := newTestMachine(`
LABEL main
CALL helper
PUSH_CONST int 42
HALT

LABEL helper
RET
`, "")
	require.NoError(t, machine.Run())
	require.Len(t, machine.Stack, 1)
	assert.Equal(t, value.Int(42), machine.Stack[0])
	assert.Len(t, machine.Frames, 1, "helper's frame must be popped by RET")
	assert.Empty(t, machine.CallStack)
}

// UNPACK_TUPLE is a left-inverse of NEW_TUPLE for sequential STORE_VAR
// consumption: the first variable stored after an unpack receives the
// tuple's first element, matching `(a, b, c) = tup` destructuring.
func TestUnpackTupleIsLeftInverseOfNewTuple(t *testing.T) {
	machine, _ := newTestMachine(`
LABEL main
PUSH_CONST int 1
PUSH_CONST int 2
PUSH_CONST int 3
NEW_TUPLE 3
UNPACK_TUPLE
STORE_VAR a
STORE_VAR b
STORE_VAR c
HALT
`, "")
	require.NoError(t, machine.Run())
	frame := machine.currentFrame()
	assert.Equal(t, value.Int(1), frame["a"])
	assert.Equal(t, value.Int(2), frame["b"])
	assert.Equal(t, value.Int(3), frame["c"])
}

func TestGenericFieldResolvesConcreteType(t *testing.T) {
	machine, _ := newTestMachine(`
LABEL main
NEW_GENERIC_OBJ Box ctorBox int
LOAD_FIELD value
HALT

LABEL ctorBox
PUSH_CONST int 7
LOAD_THIS
INIT_FIELD value
LOAD_THIS
RET

CLASS Box
GENERIC T
FIELD T value
END_CLASS
`, "")
	require.NoError(t, machine.Run())
	require.Len(t, machine.Stack, 1)
	assert.Equal(t, value.Int(7), machine.Stack[0])

	// The constructed object (still `this` after the constructor's RET)
	// carries the resolved field type; the class table keeps `T`.
	require.NotNil(t, machine.This)
	assert.Equal(t, "int", machine.This.Obj.Fields["value"].DeclaredType)
}

func TestInstanceOfIsTransitiveThroughSuperclassAndInterface(t *testing.T) {
	machine, _ := newTestMachine(`
LABEL main
NEW Dog ctorDog
INSTANCE_OF Animal
NEW Dog ctorDog
INSTANCE_OF Named
HALT

LABEL ctorDog
LOAD_THIS
RET

CLASS Animal
END_CLASS

CLASS Named
END_CLASS

CLASS Dog
EXTENDS Animal
IMPLEMENTS Named
END_CLASS
`, "")
	require.NoError(t, machine.Run())
	require.Len(t, machine.Stack, 2)
	assert.Equal(t, value.Bool(true), machine.Stack[0])
	assert.Equal(t, value.Bool(true), machine.Stack[1])
}

func TestStackUnderflowFaults(t *testing.T) {
	machine, _ := newTestMachine(`
LABEL main
ADD
HALT
`, "")
	err := machine.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stack underflow")
}

func TestUncaughtThrowIsFatal(t *testing.T) {
	machine, _ := newTestMachine(`
LABEL main
NEW MyErr ctor
THROW
HALT

LABEL ctor
PUSH_CONST str "oops"
LOAD_THIS
INIT_FIELD description
LOAD_THIS
RET

CLASS MyErr
FIELD str description
END_CLASS
`, "")
	err := machine.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uncaught exception")
	assert.Contains(t, err.Error(), "oops")
}
