// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package sieve

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"leb.io/twinprime/partition"
	"leb.io/twinprime/primes"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func base(t testing.TB, to uint32) primes.Base {
	t.Helper()
	b, err := primes.ComputeBase(uint32(primes.Isqrt(uint64(to))))
	require.NoError(t, err)
	return b
}

func reference(lo, hi uint32) []uint32 {
	var want []uint32
	for _, p := range primes.Range(uint64(lo), uint64(hi)) {
		want = append(want, uint32(p))
	}
	return want
}

func TestIntervalMatchesReference(t *testing.T) {
	ranges := [][2]uint32{{0, 1}, {0, 3}, {1, 2}, {2, 3}, {0, 100}, {100, 200}, {101, 200}, {99990, 100100}, {1000000000, 1000002000}}
	for _, r := range ranges {
		b := base(t, r[1])
		p := &partition.Partition{First: r[0], Last: r[1]}
		got, err := Interval(p, b, Capacity(r[0], r[1], DefaultHeadroom))
		require.NoError(t, err, "%v", r)
		if diff := cmp.Diff(reference(r[0], r[1]), got, cmpEmpty); diff != "" {
			t.Errorf("Interval(%v) mismatch (-want +got):\n%s", r, diff)
		}
		assert.Equal(t, r[1], p.Cursor(), "cursor ends at Last")
	}
}

// nil and empty results compare equal
var cmpEmpty = cmp.Comparer(func(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
})

func TestIntervalStrictlyIncreasing(t *testing.T) {
	p := &partition.Partition{First: 1000000000, Last: 1000020000}
	got, err := Interval(p, base(t, p.Last), Capacity(p.First, p.Last, DefaultHeadroom))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		require.Less(t, got[i-1], got[i])
	}
	assert.GreaterOrEqual(t, got[0], p.First)
	assert.Less(t, got[len(got)-1], p.Last)
}

func TestIntervalSmallSlice(t *testing.T) {
	p := &partition.Partition{First: 1000000000, Last: 1000000100}
	got, err := Interval(p, base(t, p.Last), 64)
	require.NoError(t, err)
	assert.Equal(t, reference(p.First, p.Last), got)
	assert.Contains(t, got, uint32(1000000007))
	assert.Contains(t, got, uint32(1000000009))
}

func TestIntervalCapacity(t *testing.T) {
	p := &partition.Partition{First: 100, Last: 200}
	_, err := Interval(p, base(t, 200), 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacity))

	// exactly enough
	n := len(reference(100, 200))
	got, err := Interval(&partition.Partition{First: 100, Last: 200}, base(t, 200), n)
	require.NoError(t, err)
	assert.Len(t, got, n)
}

func TestIntervalBaseTooSmall(t *testing.T) {
	b, err := primes.ComputeBase(10)
	require.NoError(t, err)
	_, err = Interval(&partition.Partition{First: 100, Last: 200}, b, 100)
	assert.True(t, errors.Is(err, ErrBaseTooSmall))
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 0, Capacity(5, 5, DefaultHeadroom))
	assert.Equal(t, 7, Capacity(0, 10, DefaultHeadroom))
	for _, r := range [][2]uint32{{17, 1000}, {100, 200}, {1000000000, 1000100000}, {1000000000, 1250000000}} {
		c := Capacity(r[0], r[1], DefaultHeadroom)
		assert.LessOrEqual(t, c, int(r[1]-r[0])/2+2)
		if r[1]-r[0] <= 100000 {
			assert.GreaterOrEqual(t, c, len(reference(r[0], r[1])), "%v", r)
		}
	}
}

func TestFindWorkersAgree(t *testing.T) {
	const from, to = 100, 200
	b := base(t, to)

	one, err := partition.Split(from, to, 1, partition.Even)
	require.NoError(t, err)
	want, err := Find(one, b, DefaultHeadroom, nil)
	require.NoError(t, err)
	require.Len(t, want, 1)

	for w := 2; w <= 12; w++ {
		parts, err := partition.Split(from, to, w, partition.Cascade(partition.DefaultSkew))
		require.NoError(t, err)
		got, err := Find(parts, b, DefaultHeadroom, zaptest.NewLogger(t))
		require.NoError(t, err)
		require.Len(t, got, w)

		var flat []uint32
		for i, r := range got {
			for _, v := range r {
				require.GreaterOrEqual(t, v, parts[i].First)
				require.Less(t, v, parts[i].Last)
			}
			flat = append(flat, r...)
		}
		assert.Equal(t, want[0], flat, "workers=%d", w)
	}
}

func TestFindFailsWhole(t *testing.T) {
	b, err := primes.ComputeBase(10)
	require.NoError(t, err)
	parts, err := partition.Split(0, 1000, 4, partition.Even)
	require.NoError(t, err)
	got, err := Find(parts, b, DefaultHeadroom, nil)
	assert.True(t, errors.Is(err, ErrBaseTooSmall))
	assert.Nil(t, got)
}

func BenchmarkInterval(b *testing.B) {
	p := &partition.Partition{First: 1000000000, Last: 1000100000}
	bs := base(b, 2000000000)
	c := Capacity(p.First, p.Last, DefaultHeadroom)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Interval(p, bs, c)
	}
}
