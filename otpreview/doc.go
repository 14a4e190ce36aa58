/*
Package otpreview applies the GSUB lookups of a feature to a text, the way a
shaping engine would for a simple left-to-right run.

It understands the substitution types a conversion font uses and is meant
for previewing and testing converted fonts, not as a general shaper. Glyphs
are mapped back to text through the reverse character map; a glyph without
code point is rendered as U+FFFD.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otpreview

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 's2t.font'
func tracer() tracing.Trace {
	return tracing.Select("s2t.font")
}
