package otfont

import (
	"errors"
	"slices"
	"testing"
)

func TestCharMapBothViews(t *testing.T) {
	cm := NewCharMap()
	cm.Map('A', "A")
	cm.Map(0x0391, "A") // Greek Alpha shares the glyph
	cm.Map('B', "B")
	if err := cm.Check(); err != nil {
		t.Fatalf("fresh map inconsistent: %v", err)
	}
	if got := cm.Codepoints("A"); !slices.Equal(got, []rune{'A', 0x0391}) {
		t.Errorf("expected code points [A, Alpha] for glyph A, got %U", got)
	}
	glyph, orphaned := cm.Unmap('A')
	if glyph != "A" || orphaned {
		t.Errorf("unmapping A: got (%q, %v), want (\"A\", false)", glyph, orphaned)
	}
	glyph, orphaned = cm.Unmap(0x0391)
	if glyph != "A" || !orphaned {
		t.Errorf("unmapping Alpha: got (%q, %v), want (\"A\", true)", glyph, orphaned)
	}
	if cm.HasGlyph("A") {
		t.Errorf("glyph A should have no code points left")
	}
	if glyph, _ := cm.Unmap('Z'); glyph != "" {
		t.Errorf("unmapping unmapped Z returned glyph %q", glyph)
	}
	if err := cm.Check(); err != nil {
		t.Fatalf("map inconsistent after unmapping: %v", err)
	}
}

func TestCharMapRemap(t *testing.T) {
	cm := NewCharMap()
	cm.Map('x', "g1")
	cm.Map('x', "g2")
	if cm.HasGlyph("g1") {
		t.Errorf("g1 should have lost its code point")
	}
	if g, _ := cm.Glyph('x'); g != "g2" {
		t.Errorf("expected x → g2, got %q", g)
	}
	if cm.Len() != 1 {
		t.Errorf("expected 1 mapped code point, got %d", cm.Len())
	}
	if err := cm.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestCharMapRemoveGlyph(t *testing.T) {
	cm := NewCharMap()
	cm.Map('a', "a")
	cm.Map('A', "a")
	cm.Map('b', "b")
	removed := cm.RemoveGlyph("a")
	slices.Sort(removed)
	if !slices.Equal(removed, []rune{'A', 'a'}) {
		t.Errorf("expected A, a removed, got %q", string(removed))
	}
	if !slices.Equal(cm.Runes(), []rune{'b'}) {
		t.Errorf("expected only b left, got %q", string(cm.Runes()))
	}
	if err := cm.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestCharMapCheckDetectsDrift(t *testing.T) {
	cm := NewCharMap()
	cm.Map('a', "a")
	cm.glyphs['b'] = "a" // bypass the reverse view
	err := cm.Check()
	if !errors.Is(err, ErrCmapInconsistent) {
		t.Fatalf("expected ErrCmapInconsistent, got %v", err)
	}
}

func TestCharMapCloneIsIndependent(t *testing.T) {
	cm := NewCharMap()
	cm.Map('a', "a")
	c := cm.Clone()
	c.Map('b', "a")
	if len(cm.Codepoints("a")) != 1 {
		t.Errorf("clone shares reverse view with original")
	}
	var pairs []string
	for r, g := range c.All() {
		pairs = append(pairs, string(r)+"="+g)
	}
	if !slices.Equal(pairs, []string{"a=a", "b=a"}) {
		t.Errorf("unexpected iteration order %v", pairs)
	}
}
