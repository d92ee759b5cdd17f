// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package primes computes the base primes used as trial divisors and provides
// a segmented sieve for listing and checking primes in a range.
package primes

import (
	"errors"
	"fmt"
	"math"
)

// ErrCapacity is returned when the base array would grow past its pre-sized capacity.
var ErrCapacity = errors.New("primes: base array capacity exceeded")

// sentinel follows the last prime of a Base, it is larger than any divisor
// bound ever used so a scan bounded by value always stops.
const sentinel = math.MaxUint32

// Base is the ascending list of all primes <= Limit().
// It is immutable once built and safe to share between goroutines.
type Base struct {
	p     []uint32 // primes followed by sentinel
	limit uint32
}

// Len returns the number of primes, not counting the sentinel.
func (b Base) Len() int {
	if len(b.p) == 0 {
		return 0
	}
	return len(b.p) - 1
}

// Primes returns the primes without the sentinel. The caller must not modify them.
func (b Base) Primes() []uint32 {
	n := b.Len()
	return b.p[:n:n]
}

// Divisors returns the primes followed by the sentinel, for scans that stop on value.
func (b Base) Divisors() []uint32 {
	return b.p
}

// Limit is the bound the base was computed for.
func (b Base) Limit() uint32 {
	return b.limit
}

// Max returns the largest prime, 0 if there are none.
func (b Base) Max() uint32 {
	if b.Len() == 0 {
		return 0
	}
	return b.p[b.Len()-1]
}

// Covers reports whether every prime divisor up to the square root of n is present.
func (b Base) Covers(n uint64) bool {
	return Isqrt(n) <= uint64(b.limit)
}

// Isqrt returns floor(sqrt(n)).
func Isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// MaxCount is an upper bound on the number of primes <= x.
// Rosser and Schoenfeld: pi(x) < 1.25506 x / ln x for x > 1.
func MaxCount(x uint32) int {
	if x < 17 {
		return 7
	}
	return int(1.25506*float64(x)/math.Log(float64(x))) + 1
}

// ComputeBase returns all primes <= limit by trial division against the primes
// already found. Only odd candidates are tested, 2 is seeded.
func ComputeBase(limit uint32) (Base, error) {
	return computeBase(limit, MaxCount(limit))
}

func computeBase(limit uint32, capacity int) (Base, error) {
	p := make([]uint32, 0, capacity+1)
	if limit >= 2 {
		p = append(p, 2)
	}
	for n := uint64(3); n <= uint64(limit); n += 2 {
		root := uint32(Isqrt(n)) + 1
		composite := false
		for _, d := range p {
			if d >= root {
				break
			}
			if uint32(n)%d == 0 {
				composite = true
				break
			}
		}
		if composite {
			continue
		}
		if len(p) == capacity {
			return Base{}, fmt.Errorf("%w: more than %d primes below %d", ErrCapacity, capacity, limit)
		}
		p = append(p, uint32(n))
	}
	return Base{p: append(p, sentinel), limit: limit}, nil
}
