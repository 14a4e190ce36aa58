package convdict

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/treemap"
)

// Entry is a single conversion: a key sequence of code points and the value
// sequence it converts to.
type Entry struct {
	Key   []rune
	Value []rune
}

// IsChar reports whether the entry converts one code point to one code point.
func (e Entry) IsChar() bool {
	return len(e.Key) == 1 && len(e.Value) == 1
}

func (e Entry) String() string {
	return string(e.Key) + "\t" + string(e.Value)
}

// longestFirst orders keys by descending length (in code points), then
// ascending by code point sequence. For valid UTF-8, byte order equals code
// point order.
func longestFirst(a, b interface{}) int {
	s1, s2 := a.(string), b.(string)
	n1, n2 := utf8.RuneCountInString(s1), utf8.RuneCountInString(s2)
	switch {
	case n1 > n2:
		return -1
	case n1 < n2:
		return 1
	}
	return strings.Compare(s1, s2)
}

// EntryList is a set of entries unique by key, kept in longest-match order:
// longer keys come first, keys of equal length are ordered by code point.
// The order holds after every insertion.
type EntryList struct {
	m *treemap.Map
}

// NewEntryList creates an empty entry list.
func NewEntryList() *EntryList {
	return &EntryList{m: treemap.NewWith(longestFirst)}
}

// Put inserts an entry. An existing entry with the same key is replaced.
func (l *EntryList) Put(key, value string) {
	l.m.Put(key, value)
}

// Get returns the value for a key.
func (l *EntryList) Get(key string) (string, bool) {
	v, found := l.m.Get(key)
	if !found {
		return "", false
	}
	return v.(string), true
}

// Remove deletes the entry for a key, if present.
func (l *EntryList) Remove(key string) {
	l.m.Remove(key)
}

// Len returns the number of entries.
func (l *EntryList) Len() int {
	return l.m.Size()
}

// All iterates over the entries in longest-match order.
func (l *EntryList) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		it := l.m.Iterator()
		for it.Next() {
			e := Entry{Key: []rune(it.Key().(string)), Value: []rune(it.Value().(string))}
			if !yield(e) {
				return
			}
		}
	}
}

// Entries returns the entries in longest-match order.
func (l *EntryList) Entries() []Entry {
	entries := make([]Entry, 0, l.Len())
	for e := range l.All() {
		entries = append(entries, e)
	}
	return entries
}

// Split partitions the list into character-level entries (one code point to
// one code point) and word-level entries (everything else). Both keep the
// list order.
func (l *EntryList) Split() (chars, words []Entry) {
	for e := range l.All() {
		if e.IsChar() {
			chars = append(chars, e)
		} else {
			words = append(words, e)
		}
	}
	return
}

// MaxKeyLen returns the length of the longest key, in code points.
func (l *EntryList) MaxKeyLen() int {
	if l.m.Empty() {
		return 0
	}
	k, _ := l.m.Min()
	return utf8.RuneCountInString(k.(string))
}
