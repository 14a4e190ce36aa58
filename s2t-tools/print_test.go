package main

import (
	"testing"

	"github.com/npillmayer/s2tfont/otfont"
	"github.com/npillmayer/s2tfont/otpreview"
)

func TestCountRules(t *testing.T) {
	lig := &otfont.LigatureSubst{Subtables: []otfont.LigatureSubtable{
		{Substitutions: []otfont.Ligature{{From: []string{"a", "b"}, To: "p0"}, {From: []string{"c", "d"}, To: "p1"}}},
		{Substitutions: []otfont.Ligature{{From: []string{"e"}, To: "p2"}}},
	}}
	if st, n := countRules(lig); st != 2 || n != 3 {
		t.Errorf("expected 2 subtables and 3 rules, have %d and %d", st, n)
	}
	single := &otfont.SingleSubst{Subtables: []map[string]string{{"a": "b", "c": "d"}}}
	if st, n := countRules(single); st != 1 || n != 2 {
		t.Errorf("expected 1 subtable and 2 rules, have %d and %d", st, n)
	}
	if st, n := countRules(&otfont.UnknownRules{Type: "gsub_chaining"}); st != 0 || n != 0 {
		t.Errorf("expected nothing counted for unknown rules, have %d and %d", st, n)
	}
}

func TestFormatRun(t *testing.T) {
	run := []otpreview.Slot{{Glyph: "uni56FD"}, {Rune: '!'}, {Glyph: "pseu0"}}
	if s := formatRun(run); s != "uni56FD|<U+0021>|pseu0" {
		t.Errorf("unexpected run format %q", s)
	}
}
