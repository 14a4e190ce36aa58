package convdict

import (
	"io"
	"strings"
)

// Converter converts text with a dictionary, replacing at each position the
// longest key found; characters without a matching key are copied.
type Converter struct {
	entries map[string]string
	maxLen  int
}

// NewConverter creates a converter from an entry list.
func NewConverter(l *EntryList) *Converter {
	c := &Converter{entries: make(map[string]string, l.Len()), maxLen: l.MaxKeyLen()}
	for e := range l.All() {
		c.entries[string(e.Key)] = string(e.Value)
	}
	return c
}

// LoadConverter reads dictionaries into a converter. Later readers override
// earlier ones. Entries are not filtered.
func LoadConverter(readers ...io.Reader) (*Converter, error) {
	l := NewEntryList()
	for i, r := range readers {
		var stats SourceStats
		err := readLines(Source{Name: "converter dictionary", Reader: r}, &stats, l.Put)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("converter dictionary #%d: %d lines, %d malformed", i, stats.Lines, stats.Malformed)
	}
	return NewConverter(l), nil
}

// Convert applies the dictionary to s.
func (c *Converter) Convert(s string) string {
	if c == nil || len(c.entries) == 0 {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); {
		n := min(c.maxLen, len(rs)-i)
		matched := false
		for ; n > 0; n-- {
			if v, ok := c.entries[string(rs[i:i+n])]; ok {
				b.WriteString(v)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			b.WriteRune(rs[i])
			i++
		}
	}
	return b.String()
}

// Chain composes mappers: the output of each is fed into the next.
type Chain []Mapper

// Convert applies all mappers in order.
func (ch Chain) Convert(s string) string {
	for _, m := range ch {
		s = m.Convert(s)
	}
	return s
}
