/*
Package convdict builds the conversion tables which are later compiled into a
font's substitution lookups.

Source dictionaries are line-oriented UTF-8 text in the format used by OpenCC:

	KEY<TAB>CANDIDATE1 CANDIDATE2 …

Only the first candidate is used. Entries are filtered against sets of allowed
key and value code points, deduplicated by key (later sources win) and kept in
an EntryList, which always iterates longest key first and breaks ties by key.
This order is what gives word-level rules longest-match priority once they are
installed in a font.

A Converter applies a dictionary to a string by longest-match segmentation. It
is used to chain dictionaries, e.g. to convert the values of a
Simplified→Traditional dictionary further to Taiwan-standard forms.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package convdict

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 's2t.font'
func tracer() tracing.Trace {
	return tracing.Select("s2t.font")
}
