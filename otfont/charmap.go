package otfont

import (
	"fmt"
	"iter"
	"slices"
)

// CharMap relates code points to glyph names in both directions.
//
// The forward view (code point → glyph) is what a font's cmap table stores; the
// reverse view (glyph → code points) is derived. Both views are updated by the
// same method call, so they cannot drift apart. Check verifies the invariant
// anyway and is cheap enough to call after every pipeline stage.
type CharMap struct {
	glyphs     map[rune]string
	codepoints map[string][]rune // sorted ascending
}

// NewCharMap creates an empty character map.
func NewCharMap() *CharMap {
	return &CharMap{
		glyphs:     make(map[rune]string),
		codepoints: make(map[string][]rune),
	}
}

// Len returns the number of mapped code points.
func (cm *CharMap) Len() int {
	return len(cm.glyphs)
}

// Glyph returns the glyph name a code point is mapped to.
func (cm *CharMap) Glyph(r rune) (string, bool) {
	g, ok := cm.glyphs[r]
	return g, ok
}

// Codepoints returns the code points mapped to a glyph, in ascending order.
// The result is a copy and may be modified by the caller.
func (cm *CharMap) Codepoints(glyph string) []rune {
	return slices.Clone(cm.codepoints[glyph])
}

// HasGlyph reports whether at least one code point maps to glyph.
func (cm *CharMap) HasGlyph(glyph string) bool {
	return len(cm.codepoints[glyph]) > 0
}

// Map associates code point r with glyph. An existing association of r is
// replaced.
func (cm *CharMap) Map(r rune, glyph string) {
	if old, ok := cm.glyphs[r]; ok {
		if old == glyph {
			return
		}
		cm.detach(r, old)
	}
	cm.glyphs[r] = glyph
	cps := cm.codepoints[glyph]
	i, _ := slices.BinarySearch(cps, r)
	cm.codepoints[glyph] = slices.Insert(cps, i, r)
}

// Unmap removes code point r. It returns the glyph r was mapped to and whether
// that glyph has no code points left. If r is not mapped, glyph is empty.
func (cm *CharMap) Unmap(r rune) (glyph string, orphaned bool) {
	glyph, ok := cm.glyphs[r]
	if !ok {
		return "", false
	}
	delete(cm.glyphs, r)
	cm.detach(r, glyph)
	return glyph, !cm.HasGlyph(glyph)
}

// RemoveGlyph removes every code point mapped to glyph and returns them.
func (cm *CharMap) RemoveGlyph(glyph string) []rune {
	cps := cm.codepoints[glyph]
	for _, r := range cps {
		delete(cm.glyphs, r)
	}
	delete(cm.codepoints, glyph)
	return cps
}

func (cm *CharMap) detach(r rune, glyph string) {
	cps := cm.codepoints[glyph]
	if i, found := slices.BinarySearch(cps, r); found {
		cps = slices.Delete(cps, i, i+1)
	}
	if len(cps) == 0 {
		delete(cm.codepoints, glyph)
	} else {
		cm.codepoints[glyph] = cps
	}
}

// Runes returns all mapped code points in ascending order.
func (cm *CharMap) Runes() []rune {
	rs := make([]rune, 0, len(cm.glyphs))
	for r := range cm.glyphs {
		rs = append(rs, r)
	}
	slices.Sort(rs)
	return rs
}

// All iterates over (code point, glyph) pairs in ascending code point order.
func (cm *CharMap) All() iter.Seq2[rune, string] {
	return func(yield func(rune, string) bool) {
		for _, r := range cm.Runes() {
			if !yield(r, cm.glyphs[r]) {
				return
			}
		}
	}
}

// MappedGlyphs returns the set of glyph names referenced by the map.
func (cm *CharMap) MappedGlyphs() map[string]struct{} {
	gs := make(map[string]struct{}, len(cm.codepoints))
	for g := range cm.codepoints {
		gs[g] = struct{}{}
	}
	return gs
}

// Clone returns a deep copy.
func (cm *CharMap) Clone() *CharMap {
	c := NewCharMap()
	for r, g := range cm.glyphs {
		c.glyphs[r] = g
	}
	for g, cps := range cm.codepoints {
		c.codepoints[g] = slices.Clone(cps)
	}
	return c
}

// Check verifies that both views describe the same relation.
func (cm *CharMap) Check() error {
	n := 0
	for g, cps := range cm.codepoints {
		if len(cps) == 0 {
			return cmapError(fmt.Sprintf("empty reverse entry for glyph %q", g))
		}
		for _, r := range cps {
			if cm.glyphs[r] != g {
				return cmapError(fmt.Sprintf("reverse entry %q lists %U, which maps to %q", g, r, cm.glyphs[r]))
			}
		}
		n += len(cps)
	}
	if n != len(cm.glyphs) {
		return cmapError(fmt.Sprintf("%d code points in cmap, %d in reverse map", len(cm.glyphs), n))
	}
	return nil
}

func cmapError(issue string) error {
	return FontError{Table: "cmap", Issue: issue, Err: ErrCmapInconsistent}
}
