/*
Package otfont holds the in-memory representation of a font as it travels
through the conversion pipeline.

The representation mirrors the glyph-table view of an external font compiler:
glyphs are keyed by name, the glyph order is an ordered list of names, the
character map relates code points to glyph names, and the layout tables GSUB
and GPOS are named collections of lookups. Package otfont never touches
binary font data; a FontCodec translates between bytes and a Font.

Lookups carry their rules as one of a closed set of variants (see Rules).
Algorithms walking the layout tables switch over these variants and treat
anything else, most notably UnknownRules, as a fatal configuration error.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otfont

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 's2t.font'
func tracer() tracing.Trace {
	return tracing.Select("s2t.font")
}
