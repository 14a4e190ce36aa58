// Package fonttest builds small synthetic fonts for tests.
package fonttest

import (
	"encoding/json"
	"fmt"

	"github.com/npillmayer/s2tfont/otfont"
)

// GlyphName is the name fixture fonts use for the glyph of a code point.
func GlyphName(r rune) string {
	return fmt.Sprintf("uni%04X", r)
}

// GlyphNames maps every code point of s to its fixture glyph name.
func GlyphNames(s string) []string {
	var names []string
	for _, r := range s {
		names = append(names, GlyphName(r))
	}
	return names
}

// New creates a font with one glyph per code point of chars, plus the
// sentinel glyphs. Glyphs carry a dummy outline and CJK metrics.
func New(chars string) *otfont.Font {
	f := otfont.NewFont()
	for _, r := range chars {
		name := GlyphName(r)
		if !f.HasGlyph(name) {
			AddGlyphs(f, name)
		}
		f.Cmap.Map(r, name)
	}
	return f
}

// AddGlyphs adds unmapped glyphs.
func AddGlyphs(f *otfont.Font, names ...string) {
	for _, name := range names {
		f.InsertEmptyGlyph(name, otfont.Metrics{AdvanceWidth: 1000, AdvanceHeight: 1000, VerticalOrigin: 880})
		f.Glyphs[name].Outline = map[string]json.RawMessage{
			"contours": json.RawMessage(`[[{"x":0,"y":0,"on":true},{"x":500,"y":500,"on":true}]]`),
		}
	}
}

// AddLookup installs a lookup into GSUB or GPOS under the given feature,
// creating the table and a DFLT_DFLT language system as needed.
func AddLookup(f *otfont.Font, table, feature, name string, rules otfont.Rules) {
	lt := f.GSUB
	if table == "GPOS" {
		lt = f.GPOS
	}
	if lt == nil {
		lt = otfont.NewLayoutTable()
		lt.Languages["DFLT_DFLT"] = &otfont.LanguageSystem{}
		if table == "GPOS" {
			f.GPOS = lt
		} else {
			f.GSUB = lt
		}
	}
	lt.Lookups[name] = &otfont.Lookup{Flags: json.RawMessage(`{}`), Rules: rules}
	lt.LookupOrder = append(lt.LookupOrder, name)
	if _, ok := lt.Features[feature]; !ok {
		for _, ls := range lt.Languages {
			ls.Features = append(ls.Features, feature)
		}
	}
	lt.Features[feature] = append(lt.Features[feature], name)
}
