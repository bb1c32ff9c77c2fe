// Package rng provides a small deterministic random stream keyed by a
// textual seed. Layouts built from it are identical on every platform
// because only 32-bit integer arithmetic is involved.
package rng

import (
	"math/bits"
	"unicode/utf16"
)

// Hash turns a seed string into a well-distributed 32-bit value.
// Characters are mixed in order as UTF-16 code units, so "ab" and "ba"
// hash differently.
func Hash(seed string) uint32 {
	units := utf16.Encode([]rune(seed))

	h := uint32(1779033703) ^ uint32(len(units))
	for _, c := range units {
		h = (h ^ uint32(c)) * 3432918353
		h = bits.RotateLeft32(h, 13)
	}
	h = (h ^ (h >> 16)) * 2246822507
	h = (h ^ (h >> 13)) * 3266489909
	return h ^ (h >> 16)
}

// Source is a mulberry32 generator. The zero value is a valid stream
// seeded with 0; use New to key it by a string.
type Source struct {
	state uint32
}

// New creates a fresh stream for the given seed string.
// Two sources built from the same string yield the same sequence.
func New(seed string) *Source {
	return &Source{state: Hash(seed)}
}

// Next advances the stream and returns a float in [0, 1).
func (s *Source) Next() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Between returns an integer in [lo, hi], inclusive on both ends.
// If hi <= lo it returns lo without advancing the stream.
func (s *Source) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(s.Next()*float64(hi-lo+1))
}
