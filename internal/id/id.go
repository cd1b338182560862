// Package id mints record identifiers.
package id

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Generator produces candidate record ids.
type Generator interface {
	Next() string
}

// UUID generates random version-4 UUIDs.
type UUID struct{}

// Next returns a new random UUID string.
func (UUID) Next() string {
	return uuid.NewString()
}

// Sequence generates "<prefix>NNN" ids from a monotonic counter. It is safe
// for concurrent use.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequence returns a Sequence whose first id is FormatSeq(prefix, 1).
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return FormatSeq(s.prefix, s.n)
}

// FormatSeq returns a sequence id like "tx-007".
func FormatSeq(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// maxAttempts bounds Unused against a generator that keeps colliding.
const maxAttempts = 64

// Unused draws ids from g until one is not taken, then prefixes it. If every
// attempt collides, a counter suffix is appended to the last candidate.
func Unused(g Generator, prefix string, taken func(string) bool) string {
	var candidate string
	for range maxAttempts {
		candidate = prefix + g.Next()
		if !taken(candidate) {
			return candidate
		}
	}
	base := candidate
	for n := 2; ; n++ {
		candidate = base + "-" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}
