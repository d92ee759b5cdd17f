// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package partition divides a range of candidates into one contiguous
// interval per worker.
package partition

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrWorkers = errors.New("partition: worker count must be at least 1")
	ErrRange   = errors.New("partition: range end precedes start")
	ErrPolicy  = errors.New("partition: policy did not conserve the range")
)

// DefaultSkew is the fraction of its share each worker hands to its predecessor.
// It was tuned by hand on machines whose later threads finished last; it is
// not derived from anything and should be treated as a knob.
const DefaultSkew = 0.09

// A Partition is the half-open interval [First, Last) assigned to one worker.
type Partition struct {
	Index int
	First uint32
	Last  uint32

	cursor atomic.Uint32
}

// Len returns the number of candidates in the partition.
func (p *Partition) Len() uint32 {
	return p.Last - p.First
}

// Cursor returns the candidate the owning worker is testing.
// It is for display only: it may be stale by the time it is used.
func (p *Partition) Cursor() uint32 {
	return p.cursor.Load()
}

// SetCursor is called only by the worker that owns the partition.
func (p *Partition) SetCursor(c uint32) {
	p.cursor.Store(c)
}

// Progress returns the completed fraction in [0, 1], display only.
func (p *Partition) Progress() float64 {
	if p.Last <= p.First {
		return 1
	}
	c := p.Cursor()
	if c <= p.First {
		return 0
	}
	if c >= p.Last {
		return 1
	}
	return float64(c-p.First) / float64(p.Len())
}

func (p *Partition) String() string {
	return fmt.Sprintf("%d:[%d, %d)", p.Index, p.First, p.Last)
}

// A Policy adjusts the per-worker shares of the range in place.
// It may move candidates between workers but must not change the total.
type Policy func(shares []uint64)

// Even leaves the baseline shares alone.
func Even(shares []uint64) {}

// Cascade returns a Policy that walks from the last worker back to the second,
// each moving fraction of the share it holds to its predecessor, so earlier
// workers accumulate share from all later ones.
func Cascade(fraction float64) Policy {
	if fraction <= 0 {
		return Even
	}
	return func(shares []uint64) {
		for i := len(shares) - 1; i > 0; i-- {
			part := uint64(float64(shares[i]) * fraction)
			if part > shares[i] {
				part = shares[i]
			}
			shares[i] -= part
			shares[i-1] += part
		}
	}
}

// Shares returns the number of candidates each of workers gets out of total.
// policy is applied to the baseline shares of total/workers each, then the
// rounding remainder is added to the last share, so the result sums to total.
func Shares(total uint64, workers int, policy Policy) ([]uint64, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrWorkers, workers)
	}
	base := total / uint64(workers)
	shares := make([]uint64, workers)
	for i := range shares {
		shares[i] = base
	}
	if policy != nil {
		policy(shares)
	}
	want := base * uint64(workers)
	var sum uint64
	for i, s := range shares {
		if s > want || sum+s > want {
			return nil, fmt.Errorf("%w: share %d is %d of %d", ErrPolicy, i, s, want)
		}
		sum += s
	}
	if sum != want {
		return nil, fmt.Errorf("%w: shares sum to %d, want %d", ErrPolicy, sum, want)
	}
	shares[workers-1] += total - want
	return shares, nil
}

// Split divides [start, end) into workers contiguous partitions sized by policy.
// The last partition always ends at end, absorbing any rounding remainder.
func Split(start, end uint32, workers int, policy Policy) ([]*Partition, error) {
	if end < start {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrRange, start, end)
	}
	shares, err := Shares(uint64(end-start), workers, policy)
	if err != nil {
		return nil, err
	}
	parts := make([]*Partition, workers)
	first := start
	for i, s := range shares {
		last := first + uint32(s)
		if i == workers-1 {
			last = end
		}
		p := &Partition{Index: i, First: first, Last: last}
		p.SetCursor(first)
		parts[i] = p
		first = last
	}
	return parts, nil
}
