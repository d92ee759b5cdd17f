// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package check verifies search results against the segmented sieve, which
// shares no code with the trial division path.
package check

import (
	"errors"
	"fmt"

	"leb.io/twinprime/pairs"
	"leb.io/twinprime/partition"
	"leb.io/twinprime/primes"
)

var (
	ErrMismatch = errors.New("check: pairs differ from reference")
	ErrOrder    = errors.New("check: primes not strictly increasing")
	ErrBounds   = errors.New("check: prime outside its partition")
	ErrCount    = errors.New("check: result count does not match partitions")
)

// Reference returns the twin primes in [from, to).
func Reference(from, to uint32) []pairs.Pair {
	var ps []pairs.Pair
	var prev uint64
	if to <= from {
		return ps
	}
	primes.Primes(uint64(from), uint64(to)-1, func(p uint64) bool {
		if prev != 0 && p-prev == 2 {
			ps = append(ps, pairs.Pair{Low: uint32(prev), High: uint32(p)})
		}
		prev = p
		return true
	})
	return ps
}

// Pairs compares got with the reference for [from, to) and reports the first difference.
func Pairs(from, to uint32, got []pairs.Pair) error {
	want := Reference(from, to)
	for i := 0; i < len(want) || i < len(got); i++ {
		switch {
		case i >= len(got):
			return fmt.Errorf("%w: missing %v and %d more", ErrMismatch, want[i], len(want)-i-1)
		case i >= len(want):
			return fmt.Errorf("%w: extra %v", ErrMismatch, got[i])
		case want[i] != got[i]:
			return fmt.Errorf("%w: pair %d is %v, want %v", ErrMismatch, i+1, got[i], want[i])
		}
	}
	return nil
}

// Results checks that each worker result is strictly increasing and inside its partition.
func Results(parts []*partition.Partition, results [][]uint32) error {
	if len(parts) != len(results) {
		return fmt.Errorf("%w: %d partitions, %d results", ErrCount, len(parts), len(results))
	}
	for i, r := range results {
		p := parts[i]
		for j, v := range r {
			if v < p.First || v >= p.Last {
				return fmt.Errorf("%w: %d in %v", ErrBounds, v, p)
			}
			if j > 0 && r[j-1] >= v {
				return fmt.Errorf("%w: %d after %d in %v", ErrOrder, v, r[j-1], p)
			}
		}
	}
	return nil
}
