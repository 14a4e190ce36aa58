/*
Package otsynth installs conversion tables into a font as GSUB lookups.

OpenType has no rule replacing a glyph sequence by another glyph sequence.
A ligature lookup collapses many glyphs into one, a multiple substitution
expands one glyph into many. Chaining the two through a zero-width
placeholder glyph per word expresses arbitrary word replacement. The
installed feature therefore consists of three lookups, applied in this order:

	word2pseu   ligature     key glyphs of a word → placeholder
	char2char   single       key glyph of a character → value glyph
	pseu2word   multiple     placeholder → value glyphs of the word

Word rules come first, so that character rules cannot alter a glyph a word
rule still has to match.

Subtables are limited to a maximum number of rules. Rules are distributed in
list order, so the longest-match order of the conversion tables is kept.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otsynth

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 's2t.font'
func tracer() tracing.Trace {
	return tracing.Select("s2t.font")
}
