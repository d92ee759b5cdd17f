// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package pairs stitches per-partition prime lists into a list of twin primes.
package pairs

import "fmt"

// A Pair is a twin prime, High == Low+2.
type Pair struct {
	Low  uint32
	High uint32
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.Low, p.High)
}

// Find returns the twin primes in results, which must be ascending lists of
// primes from contiguous partitions given in partition order.
// The boundary with everything before a partition is checked before its interior,
// so the output is ascending. Empty partitions are skipped over, the last prime
// seen is carried across them.
func Find(results [][]uint32) []Pair {
	var ps []Pair
	var prev uint32
	seen := false
	for _, r := range results {
		if len(r) == 0 {
			continue
		}
		if seen && r[0]-prev == 2 {
			ps = append(ps, Pair{prev, r[0]})
		}
		for j := 0; j+1 < len(r); j++ {
			if r[j+1]-r[j] == 2 {
				ps = append(ps, Pair{r[j], r[j+1]})
			}
		}
		prev, seen = r[len(r)-1], true
	}
	return ps
}

// Count returns the total number of primes in results.
func Count(results [][]uint32) int {
	n := 0
	for _, r := range results {
		n += len(r)
	}
	return n
}
