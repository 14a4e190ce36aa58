/*
Package otprune removes code points and glyphs from a font which a converted
font does not need.

Pruning has two parts. First, every code point outside the final code point
set is detached from the character map. Second, glyphs which cannot be
reached any more are deleted. A glyph is reachable if it is mapped by the
character map, is one of the sentinels ".notdef" and ".null", or can be
produced by an installed GSUB lookup from a reachable glyph:

	single      a → b
	multiple    a → b1, b2, …
	alternate   a → any of b1, b2, …
	ligature    any of a1, a2, … → b

Deleting a glyph strips every rule mentioning it from GSUB and GPOS. As this
may cut the only path to another glyph, reachability is recomputed until no
more glyphs die; a pruned font is a fixpoint and pruning it again is a no-op.

Lookups of any other type make pruning fail: without knowing what a lookup
produces, reachability cannot be decided.
*/
package otprune

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 's2t.font'
func tracer() tracing.Trace {
	return tracing.Select("s2t.font")
}
