package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litlang/litvm/internal/vmconfig"
)

func runFixture(t *testing.T, name string) (*Machine, string) {
	t.Helper()
	machine, err := LoadFile("testdata/"+name, vmconfig.Default())
	require.NoError(t, err)

	var out captureWriter
	machine.Stdout = &out
	machine.Stderr = &out

	return machine, out.String()
}

// captureWriter is a minimal io.Writer sink that accumulates every write;
// String returns everything written so far.
type captureWriter struct{ buf []byte }

func (w *captureWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
func (w *captureWriter) String() string { return string(w.buf) }

func TestHelloPrintsGreeting(t *testing.T) {
	machine, err := LoadFile("testdata/hello.lbc", vmconfig.Default())
	require.NoError(t, err)
	var out captureWriter
	machine.Stdout = &out

	require.NoError(t, machine.Run())
	assert.Equal(t, "Hello\n", out.String())
	assert.True(t, machine.Halted())
	assert.Equal(t, 0, machine.ExitCode())
}

func TestArithmeticPromotesToFloat(t *testing.T) {
	machine, err := LoadFile("testdata/arithmetic.lbc", vmconfig.Default())
	require.NoError(t, err)
	var out captureWriter
	machine.Stdout = &out

	require.NoError(t, machine.Run())
	assert.Equal(t, "5.5\n", out.String())
}

func TestBadTypeArithmeticFaults(t *testing.T) {
	machine, err := LoadFile("testdata/bad_type.lbc", vmconfig.Default())
	require.NoError(t, err)

	err = machine.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type error")
	assert.False(t, machine.Halted())
}

func TestTupleGetRoundTrips(t *testing.T) {
	machine, err := LoadFile("testdata/tuple.lbc", vmconfig.Default())
	require.NoError(t, err)
	var out captureWriter
	machine.Stdout = &out

	require.NoError(t, machine.Run())
	assert.Equal(t, "2\n", out.String())
}

func TestTryThrowCatchDeliversDescription(t *testing.T) {
	machine, err := LoadFile("testdata/try_catch.lbc", vmconfig.Default())
	require.NoError(t, err)
	var out captureWriter
	machine.Stdout = &out

	require.NoError(t, machine.Run())
	assert.Equal(t, "boom\n", out.String())
	assert.True(t, machine.Halted())
	assert.Equal(t, 0, machine.ExitCode())
}

func TestStaticInitRunsExactlyOnce(t *testing.T) {
	machine, err := LoadFile("testdata/static_init.lbc", vmconfig.Default())
	require.NoError(t, err)
	var out captureWriter
	machine.Stdout = &out

	require.NoError(t, machine.Run())
	// Two bumps on top of the static initializer's own reset to 0 yields 2.
	// Had the initializer re-run on a later CALL_STATIC_METHOD, its reset
	// to 0 would have discarded earlier bumps and the result would be lower.
	assert.Equal(t, "2\n", out.String())

	cls, err := machine.Loader.Load("Counter")
	require.NoError(t, err)
	assert.True(t, cls.StaticInitialized)
}
