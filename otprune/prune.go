package otprune

import (
	"fmt"
	"maps"
	"slices"

	"github.com/npillmayer/s2tfont/codepoints"
	"github.com/npillmayer/s2tfont/otfont"
)

// Report summarizes a pruning run.
type Report struct {
	DroppedCodepoints int      // code points detached from cmap
	Orphaned          []string // glyphs which lost their last code point
	Removed           []string // glyphs deleted, in order of deletion
	Passes            int      // removal passes until fixpoint
}

// Prune detaches every code point outside keep from the font and deletes all
// glyphs which become unreachable. The font is mutated in place.
//
// On error the font may be partially pruned and must be discarded.
func Prune(font *otfont.Font, keep codepoints.Set) (*Report, error) {
	if err := Validate(font); err != nil {
		return nil, err
	}
	rep := &Report{}
	for _, r := range font.Cmap.Runes() {
		if keep.Contains(r) {
			continue
		}
		glyph, orphaned := font.Cmap.Unmap(r)
		rep.DroppedCodepoints++
		if orphaned {
			rep.Orphaned = append(rep.Orphaned, glyph)
		}
	}
	tracer().Infof("prune: dropped %d code points, %d glyphs lost their last code point",
		rep.DroppedCodepoints, len(rep.Orphaned))
	for {
		dead, err := Unreachable(font)
		if err != nil {
			return rep, err
		}
		if len(dead) == 0 {
			break
		}
		rep.Passes++
		tracer().Debugf("prune: pass %d removes %d glyphs", rep.Passes, len(dead))
		if err := RemoveGlyphs(font, dead...); err != nil {
			return rep, err
		}
		rep.Removed = append(rep.Removed, dead...)
	}
	if err := font.Cmap.Check(); err != nil {
		return rep, err
	}
	tracer().Infof("prune: removed %d glyphs in %d passes, %d glyphs left",
		len(rep.Removed), rep.Passes, font.NumGlyphs())
	return rep, nil
}

// Validate checks that every lookup of GSUB and GPOS is of a type pruning can
// handle.
func Validate(font *otfont.Font) error {
	for _, tag := range []string{"GSUB", "GPOS"} {
		lt := font.LayoutTables()[tag]
		for _, nl := range lt.LookupsInOrder() {
			if !supported(tag, nl.Lookup.Rules) {
				return otfont.UnknownLookup(tag, nl.Name, nl.Lookup.TypeTag())
			}
		}
	}
	return nil
}

func supported(tag string, rules otfont.Rules) bool {
	switch rules.(type) {
	case *otfont.SingleSubst, *otfont.MultipleSubst, *otfont.AlternateSubst, *otfont.LigatureSubst:
		return tag == "GSUB"
	case *otfont.SinglePos, *otfont.PairPos:
		return tag == "GPOS"
	}
	return false
}

// RemoveGlyphs deletes glyphs from the glyph table, glyph order and every
// layout table. Glyphs must not be mapped by the character map any more.
func RemoveGlyphs(font *otfont.Font, names ...string) error {
	dead := make(GlyphSet, len(names))
	for _, name := range names {
		if font.Cmap.HasGlyph(name) {
			return otfont.FontError{
				Table: "cmap",
				Issue: fmt.Sprintf("glyph %q is still mapped by %U", name, font.Cmap.Codepoints(name)),
				Err:   otfont.ErrCmapInconsistent,
			}
		}
		dead[name] = struct{}{}
	}
	font.DeleteGlyphs(names...)
	if err := stripGSUB(font.GSUB, dead); err != nil {
		return err
	}
	return stripGPOS(font.GPOS, dead)
}

func stripGSUB(lt *otfont.LayoutTable, dead GlyphSet) error {
	for _, nl := range lt.LookupsInOrder() {
		switch r := nl.Lookup.Rules.(type) {
		case *otfont.SingleSubst:
			for _, st := range r.Subtables {
				maps.DeleteFunc(st, func(k, v string) bool {
					return dead.Contains(k) || dead.Contains(v)
				})
			}
		case *otfont.MultipleSubst:
			for _, st := range r.Subtables {
				maps.DeleteFunc(st, dead.hitsSequence)
			}
		case *otfont.AlternateSubst:
			for _, st := range r.Subtables {
				maps.DeleteFunc(st, dead.hitsSequence)
			}
		case *otfont.LigatureSubst:
			for i := range r.Subtables {
				st := &r.Subtables[i]
				st.Substitutions = slices.DeleteFunc(st.Substitutions, func(lig otfont.Ligature) bool {
					return dead.Contains(lig.To) || slices.ContainsFunc(lig.From, dead.Contains)
				})
			}
		default:
			return otfont.UnknownLookup("GSUB", nl.Name, nl.Lookup.TypeTag())
		}
	}
	return nil
}

func (gs GlyphSet) hitsSequence(k string, vs []string) bool {
	return gs.Contains(k) || slices.ContainsFunc(vs, gs.Contains)
}

func stripGPOS(lt *otfont.LayoutTable, dead GlyphSet) error {
	for _, nl := range lt.LookupsInOrder() {
		switch r := nl.Lookup.Rules.(type) {
		case *otfont.SinglePos:
			for _, st := range r.Subtables {
				for g := range dead {
					delete(st, g)
				}
			}
		case *otfont.PairPos:
			for _, st := range r.Subtables {
				for g := range dead {
					delete(st.First, g)
					delete(st.Second, g)
				}
			}
		default:
			return otfont.UnknownLookup("GPOS", nl.Name, nl.Lookup.TypeTag())
		}
	}
	return nil
}
