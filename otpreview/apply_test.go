package otpreview

import (
	"errors"
	"testing"

	"github.com/npillmayer/s2tfont/internal/fonttest"
	"github.com/npillmayer/s2tfont/otfont"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewFont() *otfont.Font {
	f := fonttest.New("头頭发髮發干幹乾")
	g := fonttest.GlyphName
	fonttest.AddGlyphs(f, "lig.toufa")
	fonttest.AddLookup(f, "GSUB", "test", "liga", &otfont.LigatureSubst{
		Subtables: []otfont.LigatureSubtable{{Substitutions: []otfont.Ligature{
			{From: []string{g('头'), g('发')}, To: "lig.toufa"},
		}}},
	})
	fonttest.AddLookup(f, "GSUB", "test", "single", &otfont.SingleSubst{
		Subtables: []map[string]string{{g('头'): g('頭')}, {g('头'): g('发'), g('发'): g('髮')}},
	})
	fonttest.AddLookup(f, "GSUB", "test", "multi", &otfont.MultipleSubst{
		Subtables: []map[string][]string{{"lig.toufa": {g('頭'), g('髮')}}},
	})
	fonttest.AddLookup(f, "GSUB", "test", "alt", &otfont.AlternateSubst{
		Subtables: []map[string][]string{{g('干'): {g('幹'), g('乾')}}},
	})
	return f
}

func TestApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "s2t.font")
	defer teardown()
	//
	f := previewFont()
	for _, tt := range []struct{ in, want string }{
		{"头发", "頭髮"},
		{"头", "頭"},
		{"发", "髮"},
		{"发头", "髮頭"},
		{"干", "幹"},
		{"x头发y", "x頭髮y"},
		{"头x发", "頭x髮"},
		{"", ""},
	} {
		got, err := Apply(f, "test", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "applying to %q", tt.in)
	}
}

func TestApplyGlyphs(t *testing.T) {
	f := previewFont()
	run := Glyphs(f, "头!")
	require.Len(t, run, 2)
	assert.Equal(t, Slot{Glyph: fonttest.GlyphName('头')}, run[0])
	assert.Equal(t, Slot{Rune: '!'}, run[1])
	out, err := ApplyGlyphs(f, "test", Glyphs(f, "头发"))
	require.NoError(t, err)
	assert.Equal(t, []Slot{{Glyph: fonttest.GlyphName('頭')}, {Glyph: fonttest.GlyphName('髮')}}, out)
	// glyphs without code point
	assert.Equal(t, "\uFFFD", Text(f, []Slot{{Glyph: "lig.toufa"}}))
}

func TestApplyErrors(t *testing.T) {
	f := fonttest.New("头")
	_, err := Apply(f, "test", "头")
	assert.Error(t, err, "font without GSUB")
	//
	f = previewFont()
	_, err = Apply(f, "nope", "头")
	assert.Error(t, err, "missing feature")
	f.GSUB.Features["broken"] = []string{"gone"}
	_, err = Apply(f, "broken", "头")
	assert.Error(t, err, "missing lookup")
	//
	fonttest.AddLookup(f, "GSUB", "ctx", "chain", &otfont.UnknownRules{})
	_, err = Apply(f, "ctx", "头")
	assert.True(t, errors.Is(err, otfont.ErrUnknownLookupType), "expected unknown lookup error, got %v", err)
}
