/*
Package codepoints computes the code point sets which decide what a converted
font keeps.

Four sets are tracked:

▪︎ font: every code point the font maps to a glyph,

▪︎ retained: a reference list of desired script code points (for Simplified
Chinese the Tongyong Guifan Hanzi Biao) intersected with font,

▪︎ auxiliary: fixed non-Han ranges (ASCII, punctuation, Bopomofo, full-width
forms, …) intersected with font,

▪︎ final: retained ∪ auxiliary, extended by every code point which a
conversion dictionary produces.

All computations are pure; fonts are only read.
*/
package codepoints

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 's2t.font'
func tracer() tracing.Trace {
	return tracing.Select("s2t.font")
}
