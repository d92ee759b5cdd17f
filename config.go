// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package twinprime

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"leb.io/twinprime/partition"
	"leb.io/twinprime/sieve"
)

var (
	ErrRange    = errors.New("twinprime: range end precedes start")
	ErrWorkers  = errors.New("twinprime: worker count must be at least 1")
	ErrSkew     = errors.New("twinprime: skew must be in [0, 1)")
	ErrHeadroom = errors.New("twinprime: headroom must be positive")
)

// The range searched by default.
const (
	DefaultFrom = 1000000000
	DefaultTo   = 2000000000
)

// Configuration for a search. All fields are exported so it can be filled from
// flags or a YAML file; it is copied into the Search and not changed after that.
type Config struct {
	From     uint32  `yaml:"from"`     // first candidate
	To       uint32  `yaml:"to"`       // one past the last candidate
	Workers  int     `yaml:"workers"`  // 0 means one per logical CPU
	Skew     float64 `yaml:"skew"`     // fraction each worker hands to its predecessor
	Headroom float64 `yaml:"headroom"` // scale of the result buffer estimate
}

// DefaultConfig returns the billion-number job: [1e9, 2e9) with the default skew and headroom.
func DefaultConfig() Config {
	return Config{
		From:     DefaultFrom,
		To:       DefaultTo,
		Skew:     partition.DefaultSkew,
		Headroom: sieve.DefaultHeadroom,
	}
}

// LoadConfig reads YAML from path over cfg, keys missing from the file keep
// their current value.
func LoadConfig(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("twinprime: config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("twinprime: config %s: %w", path, err)
	}
	return nil
}

// Validate checks the preconditions of a search.
func (c Config) Validate() error {
	switch {
	case c.To < c.From:
		return fmt.Errorf("%w: [%d, %d)", ErrRange, c.From, c.To)
	case c.Workers < 1:
		return fmt.Errorf("%w: %d", ErrWorkers, c.Workers)
	case c.Skew < 0 || c.Skew >= 1 || math.IsNaN(c.Skew):
		return fmt.Errorf("%w: %v", ErrSkew, c.Skew)
	case !(c.Headroom > 0) || math.IsInf(c.Headroom, 0):
		return fmt.Errorf("%w: %v", ErrHeadroom, c.Headroom)
	}
	return nil
}

// Policy returns the skew policy described by the config.
func (c Config) Policy() partition.Policy {
	if c.Skew == 0 {
		return partition.Even
	}
	return partition.Cascade(c.Skew)
}
