// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package sieve finds the primes of each partition by trial division against
// a shared base array, one goroutine per partition.
package sieve

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"leb.io/twinprime/partition"
	"leb.io/twinprime/primes"
)

var (
	ErrCapacity     = errors.New("sieve: result buffer capacity exceeded")
	ErrBaseTooSmall = errors.New("sieve: base primes stop short of the partition's square root")
)

// DefaultHeadroom scales the prime density estimate used to size result buffers.
const DefaultHeadroom = 1.15

// Capacity returns the number of primes to reserve for [first, last).
// It is the smaller of the odd candidate count and headroom * y / ln(first) + 64.
func Capacity(first, last uint32, headroom float64) int {
	if last <= first {
		return 0
	}
	y := uint64(last - first)
	odd := int(y/2) + 2 // odd candidates plus the prime 2
	if first < 17 {
		return odd
	}
	est := int(headroom*float64(y)/math.Log(float64(first))) + 64
	if est < odd {
		return est
	}
	return odd
}

// Interval returns the primes in p, ascending, in a buffer of the given capacity.
// Running out of capacity is fatal for the job and reported as ErrCapacity.
// The partition cursor is advanced as candidates are tested.
func Interval(p *partition.Partition, base primes.Base, capacity int) ([]uint32, error) {
	out := make([]uint32, 0, capacity)
	if p.Last <= p.First {
		p.SetCursor(p.Last)
		return out, nil
	}
	if !base.Covers(uint64(p.Last - 1)) {
		return nil, fmt.Errorf("%w: base limit %d, partition %v", ErrBaseTooSmall, base.Limit(), p)
	}
	full := func() error {
		return fmt.Errorf("%w: partition %v filled %d slots", ErrCapacity, p, cap(out))
	}

	div := base.Divisors()
	first, last := uint64(p.First), uint64(p.Last)
	if first <= 2 && last > 2 {
		if len(out) == cap(out) {
			return nil, full()
		}
		out = append(out, 2)
	}
	c := first | 1
	if c < 3 {
		c = 3
	}
	for ; c < last; c += 2 {
		p.SetCursor(uint32(c))
		root := uint32(primes.Isqrt(c)) + 1
		n := uint32(c)
		prime := true
		// the sentinel ends the scan
		for i := 0; div[i] < root; i++ {
			if n%div[i] == 0 {
				prime = false
				break
			}
		}
		if !prime {
			continue
		}
		if len(out) == cap(out) {
			return nil, full()
		}
		out = append(out, n)
	}
	p.SetCursor(p.Last)
	return out, nil
}

// Find runs Interval for every partition in its own goroutine and waits for all.
// Results are returned in partition order. Any error fails the whole search.
func Find(parts []*partition.Partition, base primes.Base, headroom float64, log *zap.Logger) ([][]uint32, error) {
	if log == nil {
		log = zap.NewNop()
	}
	results := make([][]uint32, len(parts))
	var g errgroup.Group
	for i, p := range parts {
		g.Go(func() error {
			start := time.Now()
			capacity := Capacity(p.First, p.Last, headroom)
			r, err := Interval(p, base, capacity)
			if err != nil {
				return err
			}
			results[i] = r
			log.Debug("worker done",
				zap.Int("worker", p.Index),
				zap.Uint32("first", p.First),
				zap.Uint32("last", p.Last),
				zap.Int("primes", len(r)),
				zap.Int("capacity", capacity),
				zap.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
