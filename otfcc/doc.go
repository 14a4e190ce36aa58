/*
Package otfcc translates between fonts and their glyph-table view.

The glyph-table format is the JSON dump produced by the otfcc tool chain
(https://github.com/caryll/otfcc): `otfccdump` turns a TrueType/OpenType
file into JSON, `otfccbuild` compiles JSON back into a font file.
JSONCodec handles the JSON side, ExecCodec drives the two external binaries.

Tables and glyph fields which the conversion pipeline does not need are kept
as raw JSON and written back unchanged.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otfcc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 's2t.font'
func tracer() tracing.Trace {
	return tracing.Select("s2t.font")
}
