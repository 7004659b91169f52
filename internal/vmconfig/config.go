// Package vmconfig loads the optional tunables the source hard-codes
// (the static-initialiser guard-loop cap, the operand-stack depth limit,
// trace verbosity) from a YAML file, grounded on the general posture of
// externalising interpreter knobs rather than hard-coding them (the role
// runtime/ini.go plays for PHP's ini directives in the teacher repo).
package vmconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds VM-wide tunables. Default returns the source's hard-coded
// defaults; the zero value has a StaticInitGuard of 0, which Load
// replaces with the default.
type Config struct {
	// StaticInitGuard bounds the nested execute-until-RET loop a static
	// initialiser runs in (spec.md §4.4); the source hard-codes 1000.
	StaticInitGuard int `yaml:"static_init_guard"`

	// MaxStackDepth bounds the operand stack; 0 means unbounded. The
	// source has no such limit — this is an implementation safety valve,
	// off by default.
	MaxStackDepth int `yaml:"max_stack_depth"`

	// Trace, when true, prints every dispatched instruction to stderr
	// before executing it (the mechanism behind `litvm dump`).
	Trace bool `yaml:"trace"`
}

// Default returns the source's hard-coded behavior.
func Default() Config {
	return Config{StaticInitGuard: 1000}
}

// Load reads a YAML config file, falling back to Default() for any field
// left unset (zero StaticInitGuard is treated as "not configured").
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.StaticInitGuard <= 0 {
		cfg.StaticInitGuard = Default().StaticInitGuard
	}
	return cfg, nil
}
