// Package config exposes the process-wide tracing knobs read from the
// environment. They never alter compiled output, only whether the parsed
// AST is dumped and each emitted IR or assembly line is additionally echoed
// to stderr as it is produced, which is useful while developing the
// frontend/backend without
// needing to re-read the final output file.
package config

import "github.com/caarlos0/env/v6"

// Config is populated from the process environment by Load.
type Config struct {
	TraceAST bool `env:"SYSYC_TRACE_AST" envDefault:"false"`
	TraceIR  bool `env:"SYSYC_TRACE_IR" envDefault:"false"`
	TraceASM bool `env:"SYSYC_TRACE_ASM" envDefault:"false"`
}

// Load reads the tracing knobs from the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
