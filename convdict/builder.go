package convdict

import (
	"fmt"

	"github.com/npillmayer/s2tfont/codepoints"
)

// Builder collects dictionary entries whose keys and values consist of allowed
// code points only.
type Builder struct {
	keys, values codepoints.Set
	entries      *EntryList
	stats        SourceStats
}

// NewBuilder creates a builder accepting keys made of code points in keys and
// values made of code points in values.
func NewBuilder(keys, values codepoints.Set) *Builder {
	return &Builder{keys: keys, values: values, entries: NewEntryList()}
}

// Add reads a source. Sources must be added lowest priority first, as an
// entry replaces any earlier entry with the same key.
func (b *Builder) Add(src Source) (SourceStats, error) {
	var stats SourceStats
	err := readLines(src, &stats, func(key, value string) {
		if b.AddEntry(key, value) {
			stats.Accepted++
		} else {
			stats.Rejected++
		}
	})
	if err != nil {
		return stats, fmt.Errorf("dictionary %s: %w", src.Name, err)
	}
	tracer().Infof("dictionary %s: %d lines, %d accepted, %d rejected, %d malformed",
		src.Name, stats.Lines, stats.Accepted, stats.Rejected, stats.Malformed)
	b.stats.Lines += stats.Lines
	b.stats.Accepted += stats.Accepted
	b.stats.Rejected += stats.Rejected
	b.stats.Malformed += stats.Malformed
	return stats, nil
}

// AddEntry offers a single entry to the builder and reports whether it was
// accepted.
func (b *Builder) AddEntry(key, value string) bool {
	if !b.accept(key, value) {
		return false
	}
	b.entries.Put(key, value)
	return true
}

func (b *Builder) accept(key, value string) bool {
	if key == "" || value == "" {
		return false
	}
	return b.keys.ContainsAll([]rune(key)) && b.values.ContainsAll([]rune(value))
}

// Stats returns the accumulated statistics over all sources.
func (b *Builder) Stats() SourceStats {
	return b.stats
}

// Tables holds the result of dictionary building.
type Tables struct {
	Chars   []Entry        // character-level entries, longest-match order
	Words   []Entry        // word-level entries, longest-match order
	Targets codepoints.Set // every code point on the value side of an entry
}

// Tables splits the collected entries into character and word tables and
// collects the value-side code points.
func (b *Builder) Tables() *Tables {
	t := &Tables{Targets: make(codepoints.Set)}
	t.Chars, t.Words = b.entries.Split()
	for _, list := range [][]Entry{t.Chars, t.Words} {
		for _, e := range list {
			t.Targets.Add(e.Value...)
		}
	}
	tracer().Infof("conversion tables: %d characters, %d words, %d target code points",
		len(t.Chars), len(t.Words), t.Targets.Len())
	return t
}
