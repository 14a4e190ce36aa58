/*
Package assemble runs the conversion pipeline for a font.

A build is described by a YAML configuration. It names the reference list of
code points to keep, the shape of the synthesized feature, and one or more
variants. A variant is a set of dictionary sources, for example plain
Simplified→Traditional, or Simplified→Traditional with Taiwan phrasing.
Every variant runs on its own copy of the source font:

	code point sets → conversion tables → pruning → capacity check → synthesis

If any stage fails, nothing is written.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package assemble

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 's2t.font'
func tracer() tracing.Trace {
	return tracing.Select("s2t.font")
}
