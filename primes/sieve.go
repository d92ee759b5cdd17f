// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package primes

import (
	"github.com/willf/bitset"
)

// Big is the largest value the segmented sieve accepts.
const Big = 1 << 53

// odd numbers covered by one pass of the sieve table
const segment = 10000 * 8

// gaps between the numbers coprime to 2*3*5*7, starting at 11
var wheel = []uint64{
	2, 4, 2, 4, 6, 2, 6, 4, 2, 4,
	6, 6, 2, 6, 4, 2, 6, 4, 6, 8,
	4, 2, 4, 2, 4, 8, 6, 4, 6, 2,
	4, 6, 2, 6, 6, 4, 2, 4, 6, 2,
	6, 4, 2, 4, 2, 10, 2, 10,
}

// divisors calls f with 3, 5, 7 and then every k <= max coprime to 210.
func divisors(max uint64, f func(k uint64)) {
	for _, k := range []uint64{3, 5, 7} {
		if k <= max {
			f(k)
		}
	}
	for i, k := 0, uint64(11); k <= max; k, i = k+wheel[i], (i+1)%len(wheel) {
		f(k)
	}
}

// mark the odd multiples of k in the table, bit i is nn + 2*i.
func mark(table *bitset.BitSet, nn, k uint64) {
	start := (nn + k - 1) / k * k
	if start < k*k {
		start = k * k
	}
	if start&1 == 0 {
		start += k
	}
	for j := (start - nn) / 2; j < segment; j += k {
		table.Set(uint(j))
	}
}

// Primes calls f with each prime p, lo <= p <= hi, in ascending order.
// It stops as soon as f returns false.
func Primes(lo, hi uint64, f func(p uint64) bool) {
	if hi > Big {
		panic("primes: hi > Big")
	}
	if lo <= 2 && hi >= 2 {
		if !f(2) {
			return
		}
	}
	if lo < 3 {
		lo = 3
	}
	lo |= 1

	table := bitset.New(segment)
	for nn := lo; nn <= hi; nn += 2 * segment {
		table.ClearAll()

		max := Isqrt(nn + 2*segment)
		divisors(max, func(k uint64) {
			mark(table, nn, k)
		})

		for i := uint(0); i < segment; i++ {
			if table.Test(i) {
				continue
			}
			p := nn + 2*uint64(i)
			if p > hi {
				return
			}
			if !f(p) {
				return
			}
		}
	}
}

// Range returns the primes in [lo, hi).
func Range(lo, hi uint64) []uint64 {
	var ps []uint64
	if hi <= lo {
		return ps
	}
	Primes(lo, hi-1, func(p uint64) bool {
		ps = append(ps, p)
		return true
	})
	return ps
}

// NextPrime returns the smallest prime >= n.
func NextPrime(n uint64) (p uint64) {
	Primes(n, Big, func(v uint64) bool {
		p = v
		return false
	})
	return
}
