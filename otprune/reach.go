package otprune

import (
	"slices"

	"github.com/npillmayer/s2tfont/otfont"
)

// GlyphSet is a set of glyph names.
type GlyphSet map[string]struct{}

// Contains reports whether a glyph is in the set.
func (gs GlyphSet) Contains(name string) bool {
	_, ok := gs[name]
	return ok
}

// Roots returns the glyphs which are reachable by definition: every glyph
// mapped by the character map plus the sentinels.
func Roots(font *otfont.Font) GlyphSet {
	roots := GlyphSet(font.Cmap.MappedGlyphs())
	roots[otfont.NotDef] = struct{}{}
	roots[otfont.Null] = struct{}{}
	return roots
}

// Edges returns the substitution graph of a font's GSUB table: for each glyph
// the glyphs some lookup can produce from it.
func Edges(font *otfont.Font) (map[string][]string, error) {
	edges := make(map[string][]string)
	if font.GSUB == nil {
		return edges, nil
	}
	for _, nl := range font.GSUB.LookupsInOrder() {
		switch r := nl.Lookup.Rules.(type) {
		case *otfont.SingleSubst:
			for _, st := range r.Subtables {
				for k, v := range st {
					edges[k] = append(edges[k], v)
				}
			}
		case *otfont.MultipleSubst:
			for _, st := range r.Subtables {
				for k, vs := range st {
					edges[k] = append(edges[k], vs...)
				}
			}
		case *otfont.AlternateSubst:
			for _, st := range r.Subtables {
				for k, vs := range st {
					edges[k] = append(edges[k], vs...)
				}
			}
		case *otfont.LigatureSubst:
			for _, st := range r.Subtables {
				for _, lig := range st.Substitutions {
					for _, from := range lig.From {
						edges[from] = append(edges[from], lig.To)
					}
				}
			}
		default:
			return nil, otfont.UnknownLookup("GSUB", nl.Name, nl.Lookup.TypeTag())
		}
	}
	return edges, nil
}

// Reachable computes the set of reachable glyphs of a font.
func Reachable(font *otfont.Font) (GlyphSet, error) {
	edges, err := Edges(font)
	if err != nil {
		return nil, err
	}
	reached := Roots(font)
	queue := make([]string, 0, len(reached))
	for g := range reached {
		queue = append(queue, g)
	}
	for len(queue) > 0 {
		g := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, h := range edges[g] {
			if !reached.Contains(h) {
				reached[h] = struct{}{}
				queue = append(queue, h)
			}
		}
	}
	return reached, nil
}

// Unreachable returns the glyphs of a font which are not reachable, in glyph
// order.
func Unreachable(font *otfont.Font) ([]string, error) {
	reached, err := Reachable(font)
	if err != nil {
		return nil, err
	}
	var dead []string
	seen := make(map[string]bool, len(font.GlyphOrder))
	for _, g := range font.GlyphOrder {
		seen[g] = true
		if !reached.Contains(g) {
			dead = append(dead, g)
		}
	}
	var stray []string // glyphs missing from glyph order
	for g := range font.Glyphs {
		if !seen[g] && !reached.Contains(g) {
			stray = append(stray, g)
		}
	}
	slices.Sort(stray)
	return append(dead, stray...), nil
}
