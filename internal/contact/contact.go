// Package contact defines the contact record and the helpers features share
// for identity and name comparison.
package contact

import (
	"encoding/binary"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Contact is one entry in the contacts list. ID is assigned by the list that
// creates the entry and never changes afterwards.
type Contact struct {
	ID   uuid.UUID
	Name string
}

// IDGenerator mints identifiers. Features take one as a dependency so tests
// can substitute a deterministic sequence.
type IDGenerator func() uuid.UUID

// RandomIDs returns random v4 identifiers.
func RandomIDs() IDGenerator { return uuid.New }

// IncrementingIDs returns 00000000-0000-0000-0000-000000000000, ...01, ...02
// and so on. Safe for concurrent use.
func IncrementingIDs() IDGenerator {
	var mu sync.Mutex
	var next uint64
	return func() uuid.UUID {
		mu.Lock()
		defer mu.Unlock()
		var id uuid.UUID
		binary.BigEndian.PutUint64(id[8:], next)
		next++
		return id
	}
}

// IndexOf returns the position of the first contact with id, or -1.
func IndexOf(list []Contact, id uuid.UUID) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Similarity scores two names in [0,1] by edit distance over normalized,
// case-folded runes. Identical names score 1; two empty names score 1.
func Similarity(a, b string) float64 {
	a, b = fold(a), fold(b)
	maxlen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxlen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxlen)
}

// SimilarNames returns existing contacts whose name scores at least threshold
// against name, skipping the contact with id skip. An empty name matches none.
func SimilarNames(list []Contact, name string, threshold float64, skip uuid.UUID) []Contact {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	var out []Contact
	for _, c := range list {
		if c.ID == skip {
			continue
		}
		if Similarity(c.Name, name) >= threshold {
			out = append(out, c)
		}
	}
	return out
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
