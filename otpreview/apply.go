package otpreview

import (
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/s2tfont/otfont"
)

// Slot is a position of a glyph run. Code points the font does not map are
// carried along unchanged and never take part in substitution.
type Slot struct {
	Glyph string
	Rune  rune // set for unmapped code points only
}

func (s Slot) mapped() bool {
	return s.Glyph != ""
}

// Glyphs maps text to a glyph run through the character map.
func Glyphs(font *otfont.Font, text string) []Slot {
	run := make([]Slot, 0, len(text))
	for _, r := range text {
		if g, ok := font.Cmap.Glyph(r); ok {
			run = append(run, Slot{Glyph: g})
		} else {
			run = append(run, Slot{Rune: r})
		}
	}
	return run
}

// Text maps a glyph run back to text.
func Text(font *otfont.Font, run []Slot) string {
	var b strings.Builder
	for _, s := range run {
		if !s.mapped() {
			b.WriteRune(s.Rune)
			continue
		}
		if cps := font.Cmap.Codepoints(s.Glyph); len(cps) > 0 {
			b.WriteRune(cps[0])
		} else {
			b.WriteRune('\uFFFD')
		}
	}
	return b.String()
}

// Apply converts text by applying every lookup of a GSUB feature in the
// order the feature lists them.
func Apply(font *otfont.Font, feature, text string) (string, error) {
	run, err := ApplyGlyphs(font, feature, Glyphs(font, text))
	if err != nil {
		return "", err
	}
	return Text(font, run), nil
}

// ApplyGlyphs applies a GSUB feature to a glyph run.
func ApplyGlyphs(font *otfont.Font, feature string, run []Slot) ([]Slot, error) {
	if font.GSUB == nil {
		return nil, fmt.Errorf("font has no GSUB table")
	}
	lookups, ok := font.GSUB.Features[feature]
	if !ok {
		return nil, fmt.Errorf("font has no GSUB feature %q", feature)
	}
	for _, name := range lookups {
		lu, ok := font.GSUB.Lookups[name]
		if !ok {
			return nil, fmt.Errorf("feature %q references missing lookup %q", feature, name)
		}
		var err error
		if run, err = applyLookup(name, lu, run); err != nil {
			return nil, err
		}
		tracer().Debugf("after %s: %v", name, run)
	}
	return run, nil
}

func applyLookup(name string, lu *otfont.Lookup, run []Slot) ([]Slot, error) {
	switch r := lu.Rules.(type) {
	case *otfont.SingleSubst:
		return substitute(run, func(g string) ([]string, bool) {
			for _, st := range r.Subtables {
				if to, ok := st[g]; ok {
					return []string{to}, true
				}
			}
			return nil, false
		}), nil
	case *otfont.MultipleSubst:
		return substitute(run, sequenceRule(r.Subtables, false)), nil
	case *otfont.AlternateSubst:
		return substitute(run, sequenceRule(r.Subtables, true)), nil
	case *otfont.LigatureSubst:
		return ligate(r, run), nil
	}
	return nil, otfont.UnknownLookup("GSUB", name, lu.TypeTag())
}

// substitute replaces every mapped glyph for which rule yields a result.
func substitute(run []Slot, rule func(string) ([]string, bool)) []Slot {
	out := make([]Slot, 0, len(run))
	for _, s := range run {
		if s.mapped() {
			if to, ok := rule(s.Glyph); ok {
				for _, g := range to {
					out = append(out, Slot{Glyph: g})
				}
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// sequenceRule finds the first subtable covering a glyph. For alternates only
// the first alternate is selected.
func sequenceRule(subtables []map[string][]string, first bool) func(string) ([]string, bool) {
	return func(g string) ([]string, bool) {
		for _, st := range subtables {
			if to, ok := st[g]; ok {
				if first && len(to) > 0 {
					return to[:1], true
				}
				return to, true
			}
		}
		return nil, false
	}
}

// ligate scans the run left to right. At each position the first matching
// ligature, in subtable order, wins.
func ligate(lu *otfont.LigatureSubst, run []Slot) []Slot {
	out := make([]Slot, 0, len(run))
	for i := 0; i < len(run); {
		if lig, ok := matchLigature(lu, run[i:]); ok {
			out = append(out, Slot{Glyph: lig.To})
			i += len(lig.From)
			continue
		}
		out = append(out, run[i])
		i++
	}
	return out
}

func matchLigature(lu *otfont.LigatureSubst, run []Slot) (otfont.Ligature, bool) {
	if !run[0].mapped() {
		return otfont.Ligature{}, false
	}
	for _, st := range lu.Subtables {
		for _, lig := range st.Substitutions {
			if len(lig.From) == 0 || len(lig.From) > len(run) {
				continue
			}
			if slices.EqualFunc(lig.From, run[:len(lig.From)], func(g string, s Slot) bool {
				return s.mapped() && s.Glyph == g
			}) {
				return lig, true
			}
		}
	}
	return otfont.Ligature{}, false
}
