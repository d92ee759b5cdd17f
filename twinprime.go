// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package twinprime finds the twin primes (p, p+2) in a range.
// A base array of primes up to the square root of the range is built first,
// then the range is split into one partition per worker, each partition is
// sieved by trial division in its own goroutine, and the per-partition lists
// are stitched together, including pairs that straddle a partition boundary.
package twinprime

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"leb.io/twinprime/pairs"
	"leb.io/twinprime/partition"
	"leb.io/twinprime/primes"
	"leb.io/twinprime/sieve"
)

// Counters. All public.
type Counters struct {
	BasePrimes int           // primes in the base array
	Primes     int           // primes found in the range
	Pairs      int           // twin primes found in the range
	Elapsed    time.Duration // time spent sieving and stitching
}

// A Search is one run over one range. The base array and partitions are built
// by New so progress can be observed before Run is called.
type Search struct {
	Config
	Counters
	base    primes.Base
	parts   []*partition.Partition
	results [][]uint32
	policy  partition.Policy
	log     *zap.Logger
}

// An Option changes how a Search is built.
type Option func(*Search)

// WithLogger sets the logger, the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Search) {
		s.log = l
	}
}

// WithPolicy replaces the skew policy derived from Config.Skew.
func WithPolicy(p partition.Policy) Option {
	return func(s *Search) {
		s.policy = p
	}
}

// New validates cfg, computes the base array and partitions the range.
func New(cfg Config, opts ...Option) (*Search, error) {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Search{Config: cfg, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	if s.policy == nil {
		s.policy = cfg.Policy()
	}

	limit := uint32(primes.Isqrt(uint64(cfg.To)))
	base, err := primes.ComputeBase(limit)
	if err != nil {
		return nil, err
	}
	s.base = base
	s.BasePrimes = base.Len()
	s.log.Info("base primes generated",
		zap.Int("count", base.Len()),
		zap.Uint32("limit", limit),
		zap.Uint32("max", base.Max()))

	parts, err := partition.Split(cfg.From, cfg.To, cfg.Workers, s.policy)
	if err != nil {
		return nil, err
	}
	s.parts = parts
	for _, p := range parts {
		s.log.Debug("partition", zap.Int("worker", p.Index), zap.Uint32("first", p.First), zap.Uint32("last", p.Last))
	}
	return s, nil
}

// Base returns the shared base array.
func (s *Search) Base() primes.Base {
	return s.base
}

// Partitions returns the partitions, their cursors may be read while Run is in progress.
func (s *Search) Partitions() []*partition.Partition {
	return s.parts
}

// Results returns the per-partition primes of the last Run, nil before that.
func (s *Search) Results() [][]uint32 {
	return s.results
}

// Run sieves every partition in parallel, waits for all of them and returns
// the twin primes in ascending order. Any worker failure fails the run.
func (s *Search) Run() ([]pairs.Pair, error) {
	s.log.Info("search started",
		zap.Uint32("from", s.From),
		zap.Uint32("to", s.To),
		zap.Int("workers", len(s.parts)))
	start := time.Now()
	results, err := sieve.Find(s.parts, s.base, s.Headroom, s.log)
	if err != nil {
		return nil, err
	}
	s.results = results
	ps := pairs.Find(results)
	s.Primes = pairs.Count(results)
	s.Pairs = len(ps)
	s.Elapsed = time.Since(start)
	s.log.Info("search complete",
		zap.Int("primes", s.Primes),
		zap.Int("pairs", s.Pairs),
		zap.Duration("elapsed", s.Elapsed))
	return ps, nil
}

// Find is New followed by Run.
func Find(cfg Config, opts ...Option) ([]pairs.Pair, error) {
	s, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return s.Run()
}
