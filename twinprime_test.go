// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package twinprime

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"leb.io/twinprime/pairs"
	"leb.io/twinprime/partition"
	"leb.io/twinprime/primes"
)

// reference pairs from the segmented sieve
func reference(from, to uint32) []pairs.Pair {
	var ps []pairs.Pair
	var prev uint64
	for _, p := range primes.Range(uint64(from), uint64(to)) {
		if prev != 0 && p-prev == 2 {
			ps = append(ps, pairs.Pair{Low: uint32(prev), High: uint32(p)})
		}
		prev = p
	}
	return ps
}

func cfg(from, to uint32, workers int, skew float64) Config {
	c := DefaultConfig()
	c.From, c.To, c.Workers, c.Skew = from, to, workers, skew
	return c
}

func TestFindHundreds(t *testing.T) {
	want := []pairs.Pair{{101, 103}, {107, 109}, {137, 139}, {149, 151}, {179, 181}, {191, 193}, {197, 199}}
	one, err := Find(cfg(100, 200, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, want, one)

	four, err := Find(cfg(100, 200, 4, 0))
	require.NoError(t, err)
	if diff := cmp.Diff(one, four); diff != "" {
		t.Errorf("worker count changed the result (-1 +4):\n%s", diff)
	}
}

func TestFindMatchesReference(t *testing.T) {
	ranges := [][2]uint32{{0, 1000}, {1000000000, 1000000100}, {1000000000, 1000050000}, {4294900000, 4294967295}}
	for _, r := range ranges {
		want := reference(r[0], r[1])
		for _, w := range []int{1, 2, 3, 7, 16} {
			got, err := Find(cfg(r[0], r[1], w, partition.DefaultSkew), WithLogger(zaptest.NewLogger(t)))
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%v workers=%d (-want +got):\n%s", r, w, diff)
			}
		}
	}
}

func TestFindBelowThousand(t *testing.T) {
	ps, err := Find(cfg(0, 1000, 5, partition.DefaultSkew))
	require.NoError(t, err)
	assert.Len(t, ps, 35)
	assert.Equal(t, pairs.Pair{Low: 3, High: 5}, ps[0])
}

func TestSmallSlice(t *testing.T) {
	ps, err := Find(cfg(1000000000, 1000000100, 1, partition.DefaultSkew))
	require.NoError(t, err)
	assert.Equal(t, reference(1000000000, 1000000100), ps)
	assert.Contains(t, ps, pairs.Pair{Low: 1000000007, High: 1000000009})
}

func TestBoundaryPair(t *testing.T) {
	// the even split puts 149 last in the first partition and 151 first in the second
	s, err := New(cfg(100, 200, 2, 0))
	require.NoError(t, err)
	require.Equal(t, uint32(150), s.Partitions()[1].First)
	ps, err := s.Run()
	require.NoError(t, err)
	assert.Contains(t, ps, pairs.Pair{Low: 149, High: 151})

	r := s.Results()
	assert.Equal(t, uint32(149), r[0][len(r[0])-1])
	assert.Equal(t, uint32(151), r[1][0])

	n := 0
	for _, p := range ps {
		if p.Low == 149 {
			n++
		}
	}
	assert.Equal(t, 1, n, "boundary pair counted once")
}

func TestIdempotent(t *testing.T) {
	c := cfg(1000000000, 1000030000, 6, partition.DefaultSkew)
	a, err := Find(c)
	require.NoError(t, err)
	b, err := Find(c)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	da, err := pairs.Digest(a, "m3")
	require.NoError(t, err)
	db, err := pairs.Digest(b, "m3")
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestCounters(t *testing.T) {
	s, err := New(cfg(100, 200, 3, partition.DefaultSkew))
	require.NoError(t, err)
	assert.Equal(t, 6, s.BasePrimes) // 2 3 5 7 11 13
	assert.Nil(t, s.Results())
	ps, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, 21, s.Primes)
	assert.Equal(t, len(ps), s.Pairs)
	for _, p := range s.Partitions() {
		assert.Equal(t, 1.0, p.Progress())
	}
}

func TestDefaultWorkers(t *testing.T) {
	s, err := New(cfg(100, 200, 0, 0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Workers, 1)
	assert.Len(t, s.Partitions(), s.Workers)
}

func TestWithPolicy(t *testing.T) {
	front := func(shares []uint64) {
		for i := 1; i < len(shares); i++ {
			shares[0] += shares[i]
			shares[i] = 0
		}
	}
	s, err := New(cfg(100, 200, 4, partition.DefaultSkew), WithPolicy(front))
	require.NoError(t, err)
	assert.Equal(t, uint32(200), s.Partitions()[0].Last)
	ps, err := s.Run()
	require.NoError(t, err)
	assert.Len(t, ps, 7)
}

func TestValidate(t *testing.T) {
	bad := map[error]Config{
		ErrRange:    cfg(200, 100, 1, 0),
		ErrWorkers:  cfg(100, 200, -1, 0),
		ErrSkew:     cfg(100, 200, 1, 1),
		ErrHeadroom: {From: 1, To: 2, Workers: 1},
	}
	for want, c := range bad {
		_, err := New(c)
		assert.True(t, errors.Is(err, want), "want %v got %v", want, err)
	}
	assert.True(t, errors.Is(cfg(100, 200, 1, -0.1).Validate(), ErrSkew))
	// New fills in the worker count, Validate does not
	assert.True(t, errors.Is(DefaultConfig().Validate(), ErrWorkers))
	c := DefaultConfig()
	c.Workers = 8
	assert.NoError(t, c.Validate())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "twinprime.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("from: 100\nto: 200\nworkers: 3\n"), 0o644))

	c := DefaultConfig()
	require.NoError(t, LoadConfig(fn, &c))
	assert.Equal(t, uint32(100), c.From)
	assert.Equal(t, uint32(200), c.To)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, partition.DefaultSkew, c.Skew, "missing keys keep defaults")

	require.NoError(t, os.WriteFile(fn, []byte("from: -1\n"), 0o644))
	assert.Error(t, LoadConfig(fn, &c))
	assert.Error(t, LoadConfig(filepath.Join(dir, "missing.yaml"), &c))
}

func BenchmarkFind(b *testing.B) {
	c := cfg(1000000000, 1000100000, 4, partition.DefaultSkew)
	for i := 0; i < b.N; i++ {
		_, _ = Find(c)
	}
}
