package vmconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSetsStaticInitGuard(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1000, cfg.StaticInitGuard)
	assert.False(t, cfg.Trace)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadReadsOverridesAndFillsInUnsetGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".litvm.yml")
	require.NoError(t, os.WriteFile(path, []byte("trace: true\nmax_stack_depth: 64\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Trace)
	assert.Equal(t, 64, cfg.MaxStackDepth)
	assert.Equal(t, 1000, cfg.StaticInitGuard, "unset guard must fall back to the default")
}

func TestLoadHonorsExplicitGuardOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".litvm.yml")
	require.NoError(t, os.WriteFile(path, []byte("static_init_guard: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.StaticInitGuard)
}
