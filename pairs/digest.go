// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package pairs

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/alecthomas/binary"
	"github.com/dataence/cityhash"
	"github.com/spaolacci/murmur3"
)

// ErrHash is returned for an unknown hash function name.
var ErrHash = errors.New("pairs: unknown hash function")

// Hashes lists the names Digest accepts.
var Hashes = []string{"m3", "city"}

const seed = 0x7c15

// Select a hash function.
func getHash(name string) (func(b []byte) uint64, error) {
	switch name {
	case "", "m3":
		return func(b []byte) uint64 {
			h := murmur3.New64WithSeed(seed)
			h.Write(b)
			return h.Sum64()
		}, nil
	case "city":
		return func(b []byte) uint64 {
			return cityhash.CityHash64WithSeed(b, uint32(len(b)), seed)
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrHash, name)
	}
}

// Digest fingerprints ps with the named hash function so two runs can be
// compared without keeping both lists. Equal lists give equal digests.
func Digest(ps []Pair, hashName string) (uint64, error) {
	hf, err := getHash(hashName)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	buf.Grow(8*len(ps) + 8)
	enc := binary.NewEncoder(&buf)
	if err := enc.Encode(ps); err != nil {
		return 0, fmt.Errorf("pairs: encode: %w", err)
	}
	return hf(buf.Bytes()), nil
}
