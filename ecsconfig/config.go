// Package ecsconfig loads the tunables a vigna registry is built with from
// a YAML document: sparse page size, initial pool capacity hints and
// whether signal notifications are wired up at all.
package ecsconfig

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the values a host application can tune without touching
// code. Fields that named archetype grouping, thread pools or query
// caching in the teacher's world config have no equivalent in a
// single-threaded sparse-set core and are not carried over.
type Config struct {
	SparsePageSize      uint64        `yaml:"sparse_page_size"`
	InitialPoolCapacity int           `yaml:"initial_pool_capacity"`
	EnableSignals       bool          `yaml:"enable_signals"`
	EnableDebugChecks   bool          `yaml:"enable_debug_checks"`
	ScriptTimeout       time.Duration `yaml:"script_timeout"`

	// Demo-only, consumed by cmd/demo.
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	Title        string `yaml:"title"`
}

// Default returns a configuration suitable for a small demo world.
func Default() Config {
	return Config{
		SparsePageSize:      4096,
		InitialPoolCapacity: 256,
		EnableSignals:       true,
		EnableDebugChecks:   true,
		ScriptTimeout:       2 * time.Second,
		WindowWidth:         640,
		WindowHeight:        480,
		Title:               "vigna demo",
	}
}

// Load parses a YAML document into a Config, starting from Default and
// overriding whatever the document specifies.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, WrapError(err, ErrInvalidConfig, "parsing config yaml")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.SparsePageSize == 0 || (c.SparsePageSize&(c.SparsePageSize-1)) != 0 {
		return NewConfigError(ErrInvalidConfig, fmt.Sprintf("sparse_page_size must be a power of two, got %d", c.SparsePageSize))
	}
	if c.InitialPoolCapacity < 0 {
		return NewConfigError(ErrInvalidConfig, "initial_pool_capacity must not be negative")
	}
	return nil
}
