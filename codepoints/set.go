package codepoints

import (
	"iter"
	"maps"
	"slices"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Set is an unordered set of code points.
type Set map[rune]struct{}

// NewSet creates a set from a list of code points.
func NewSet(rs ...rune) Set {
	s := make(Set, len(rs))
	for _, r := range rs {
		s[r] = struct{}{}
	}
	return s
}

// FromTable creates a set from all code points of a range table.
func FromTable(rt *unicode.RangeTable) Set {
	s := make(Set)
	rangetable.Visit(rt, func(r rune) {
		s[r] = struct{}{}
	})
	return s
}

// Add inserts code points.
func (s Set) Add(rs ...rune) {
	for _, r := range rs {
		s[r] = struct{}{}
	}
}

// Contains reports whether r is in the set.
func (s Set) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// ContainsAll reports whether every code point of rs is in the set.
func (s Set) ContainsAll(rs []rune) bool {
	for _, r := range rs {
		if !s.Contains(r) {
			return false
		}
	}
	return true
}

// Len returns the number of code points.
func (s Set) Len() int {
	return len(s)
}

// Union returns a new set s ∪ t.
func (s Set) Union(t Set) Set {
	u := maps.Clone(s)
	if u == nil {
		u = make(Set, len(t))
	}
	maps.Copy(u, t)
	return u
}

// Intersect returns a new set s ∩ t.
func (s Set) Intersect(t Set) Set {
	if len(t) < len(s) {
		s, t = t, s
	}
	u := make(Set)
	for r := range s {
		if t.Contains(r) {
			u[r] = struct{}{}
		}
	}
	return u
}

// Difference returns a new set s ∖ t.
func (s Set) Difference(t Set) Set {
	u := make(Set)
	for r := range s {
		if !t.Contains(r) {
			u[r] = struct{}{}
		}
	}
	return u
}

// IsSubset reports whether s ⊆ t.
func (s Set) IsSubset(t Set) bool {
	for r := range s {
		if !t.Contains(r) {
			return false
		}
	}
	return true
}

// Sorted returns the code points in ascending order.
func (s Set) Sorted() []rune {
	return slices.Sorted(maps.Keys(s))
}

// All iterates over the code points in ascending order.
func (s Set) All() iter.Seq[rune] {
	return slices.Values(s.Sorted())
}
