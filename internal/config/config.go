// Package config loads dirpulse settings from flags, environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"slices"
)

// Default values for every configuration key.
const (
	DefaultTopSize = 10
	DefaultOutput  = OutputTable
	DefaultHidden  = false
	DefaultFollow  = true
	DefaultDepth   = 0
	DefaultWalker  = WalkerFast
	DefaultDebug   = false
	DefaultNoColor = false
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Traversal backends.
const (
	WalkerFast  = "fastwalk"
	WalkerAfero = "afero"
)

// Outputs lists the accepted output formats.
//
//nolint:gochecknoglobals // Config constant
var Outputs = []string{OutputTable, OutputJSON, OutputYAML}

// Walkers lists the accepted traversal backends.
//
//nolint:gochecknoglobals // Config constant
var Walkers = []string{WalkerFast, WalkerAfero}

// Config is the complete dirpulse configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	// TopSize is the number of largest files to track.
	TopSize int `mapstructure:"top_size"`
	// Output is the report format.
	Output string `mapstructure:"output"`
	// Hidden includes entries whose name starts with a dot.
	Hidden bool `mapstructure:"hidden"`
	// Follow follows symbolic links.
	Follow bool `mapstructure:"follow"`
	// Exclude contains regex patterns to exclude.
	Exclude []string `mapstructure:"exclude"`
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int `mapstructure:"depth"`
	// Walker selects the traversal backend.
	Walker string `mapstructure:"walker"`
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
	// NoColor disables colored output.
	NoColor bool `mapstructure:"no_color"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidTopSize indicates the top size is negative.
	ErrInvalidTopSize = errors.New("top_size must be non-negative")
	// ErrInvalidDepth indicates the depth is negative.
	ErrInvalidDepth = errors.New("depth cannot be negative")
	// ErrInvalidOutput indicates an unknown output format.
	ErrInvalidOutput = errors.New("invalid output format")
	// ErrInvalidWalker indicates an unknown traversal backend.
	ErrInvalidWalker = errors.New("invalid walker")
)

// Defaults returns the configuration built from the package defaults.
func Defaults() Config {
	return Config{
		TopSize: DefaultTopSize,
		Output:  DefaultOutput,
		Hidden:  DefaultHidden,
		Follow:  DefaultFollow,
		Exclude: []string{},
		Depth:   DefaultDepth,
		Walker:  DefaultWalker,
		Debug:   DefaultDebug,
		NoColor: DefaultNoColor,
	}
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.TopSize < 0 {
		return ErrInvalidTopSize
	}

	if c.Depth < 0 {
		return ErrInvalidDepth
	}

	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("%w %q: must be one of %v", ErrInvalidOutput, c.Output, Outputs)
	}

	if !slices.Contains(Walkers, c.Walker) {
		return fmt.Errorf("%w %q: must be one of %v", ErrInvalidWalker, c.Walker, Walkers)
	}

	return nil
}
