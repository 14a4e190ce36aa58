package assemble

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/s2tfont/codepoints"
	"github.com/npillmayer/s2tfont/convdict"
	"github.com/npillmayer/s2tfont/internal/fonttest"
	"github.com/npillmayer/s2tfont/otfcc"
	"github.com/npillmayer/s2tfont/otfont"
	"github.com/npillmayer/s2tfont/otpreview"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fixture font maps simplified and traditional forms. 髮 is neither in
// the reference list nor a conversion target.
func fixtureFont() *otfont.Font {
	f := fonttest.New("国國台臺湾灣汉漢发髮發测x")
	g := fonttest.GlyphName
	fonttest.AddGlyphs(f, "fa.vert")
	fonttest.AddLookup(f, "GSUB", "vert", "vert1", &otfont.SingleSubst{
		Subtables: []map[string]string{{g('髮'): "fa.vert"}},
	})
	return f
}

func fixtureConfig(t *testing.T, dir string) *Config {
	cfg, err := ParseConfig([]byte(`
reference: ref.txt
metadata:
  revision: 2.001
variants:
  - name: tw
    locale: zh-TW
    output: out/{font}-tw.json
    sources:
      - path: chars.txt
      - path: phrases.txt
        key-map: [t2s.txt]
    names:
      Sans: Sans TW
  - name: broken
    locale: zh-HK
    sources:
      - path: missing.txt
`), dir)
	require.NoError(t, err)
	return cfg
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "s2t.font")
	defer teardown()
	//
	cfg, err := ParseConfig([]byte("reference: r\nvariants: [{name: tw, locale: zh-TW, sources: [{path: d}]}]"), "")
	require.NoError(t, err)
	a := &Assembler{Config: cfg, Reference: codepoints.NewSet([]rune("国台湾汉发测")...)}
	f := fixtureFont()
	rep, err := a.Run(f, "tw", convdict.Source{
		Name:   "inline",
		Reader: strings.NewReader("国\t國\n台湾\t臺灣\n发\t發 髮\n汉\t漢\n测\t測\n\nbroken line\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Chars)
	assert.Equal(t, 1, rep.Words)
	assert.Equal(t, 4, rep.Dictionary.Accepted)
	assert.Equal(t, 1, rep.Dictionary.Rejected, "測 is not in the font")
	assert.Equal(t, 1, rep.Dictionary.Malformed)
	assert.Equal(t, 1, rep.Synth.Placeholders)
	assert.Equal(t, f.NumGlyphs(), rep.Glyphs)
	//
	assert.True(t, rep.Codepoints.Final.Contains('國'), "targets are kept")
	assert.True(t, rep.Codepoints.Final.Contains('x'), "auxiliary code points are kept")
	assert.Equal(t, []rune("髮"), rep.Codepoints.Drop().Sorted())
	assert.Equal(t, 1, rep.Prune.DroppedCodepoints)
	assert.False(t, f.HasGlyph(fonttest.GlyphName('髮')))
	assert.False(t, f.HasGlyph("fa.vert"), "glyphs reachable only from pruned glyphs are removed")
	assert.NoError(t, f.Cmap.Check())
	//
	got, err := otpreview.Apply(f, cfg.Feature, "台湾国发x测")
	require.NoError(t, err)
	assert.Equal(t, "臺灣國發x测", got)
}

func TestRunGlyphOverflow(t *testing.T) {
	cfg, err := ParseConfig([]byte("reference: r\nglyph-ceiling: 8\nvariants: [{name: tw, locale: zh-TW, sources: [{path: d}]}]"), "")
	require.NoError(t, err)
	a := &Assembler{Config: cfg, Reference: codepoints.NewSet([]rune("国台湾")...)}
	f := fonttest.New("国國台臺湾灣")
	_, err = a.Run(f, "tw", convdict.Source{
		Name:   "inline",
		Reader: strings.NewReader("台湾\t臺灣\n国台\t國臺\n湾国\t灣國\n"),
	})
	assert.True(t, errors.Is(err, otfont.ErrGlyphOverflow), "expected overflow, got %v", err)
}

func TestApplyMetadata(t *testing.T) {
	f := otfont.NewFont()
	f.Tables["name"] = json.RawMessage(`[{"platformID":3,"encodingID":1,"languageID":1033,"nameID":17,"nameString":"Bd"}]`)
	f.Tables["head"] = json.RawMessage(`{"unitsPerEm":1000,"fontRevision":1}`)
	header := []NameRecord{
		{PlatformID: 3, EncodingID: 1, LanguageID: 1033, NameID: 1, NameString: "Noto Sans"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 1033, NameID: 2, NameString: "<Subfamily Name>"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 1033, NameID: 5, NameString: "Version <Version>; <Date>"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 1033, NameID: 17, NameString: "<Typographic Subfamily Name>"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 1033, NameID: 6, NameString: "NotoSansMono"},
	}
	meta := Metadata{Revision: 2.5, Styles: map[string]string{"Bd": "Bold"}}
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	rename := map[string]string{"Sans": "Sans TW", "SansMono": "SansMonoTW"}
	require.NoError(t, ApplyMetadata(f, meta, header, rename, now))
	//
	names, err := NameTable(f)
	require.NoError(t, err)
	require.Len(t, names, 5)
	got := make([]string, len(names))
	for i, n := range names {
		got[i] = n.NameString
	}
	assert.Equal(t, []string{"Noto Sans TW", "Bold", "Version 2.5; Mar 05, 2024", "Bold", "NotoSansMonoTW"}, got)
	assert.Equal(t, "<Subfamily Name>", header[1].NameString, "header template is not modified")
	assert.JSONEq(t, `{"unitsPerEm":1000,"fontRevision":2.5}`, string(f.Tables["head"]))
}

func TestApplyMetadataKeepsNames(t *testing.T) {
	f := otfont.NewFont()
	f.Tables["name"] = json.RawMessage(`[{"platformID":3,"encodingID":1,"languageID":1033,"nameID":4,"nameString":"Noto Sans Regular"}]`)
	require.NoError(t, ApplyMetadata(f, Metadata{}, nil, map[string]string{"Sans": "Sans HK"}, time.Now()))
	names, err := NameTable(f)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "Noto Sans HK Regular", names[0].NameString)
	assert.NotContains(t, f.Tables, "head")
	//
	g := otfont.NewFont()
	require.NoError(t, ApplyMetadata(g, Metadata{}, nil, nil, time.Now()))
	assert.NotContains(t, g.Tables, "name")
}

func TestApplyMetadataMalformedTables(t *testing.T) {
	f := otfont.NewFont()
	f.Tables["name"] = json.RawMessage(`{"nameID": 1}`)
	err := ApplyMetadata(f, Metadata{}, nil, nil, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, otfont.ErrMalformedTable), "expected malformed table, got %v", err)
	assert.NotContains(t, err.Error(), "%!")
	//
	g := otfont.NewFont()
	g.Tables["head"] = json.RawMessage(`[1]`)
	err = ApplyMetadata(g, Metadata{Revision: 1.5}, nil, nil, time.Now())
	assert.True(t, errors.Is(err, otfont.ErrMalformedTable), "expected malformed table, got %v", err)
}

func TestStyle(t *testing.T) {
	rec := func(id int, s string) NameRecord { return NameRecord{NameID: id, NameString: s} }
	assert.Equal(t, "Regular", Style(nil, nil))
	assert.Equal(t, "Italic", Style([]NameRecord{rec(2, "Italic")}, nil))
	assert.Equal(t, "Light", Style([]NameRecord{rec(2, "Regular"), rec(17, "Light")}, nil))
	assert.Equal(t, "SemiBold", Style([]NameRecord{rec(17, "SB")}, map[string]string{"SB": "SemiBold"}))
}

func TestBuildFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "s2t.font")
	defer teardown()
	//
	dir := t.TempDir()
	codec := otfcc.JSONCodec{}
	data, err := codec.Encode(fixtureFont())
	require.NoError(t, err)
	writeFiles(t, dir, map[string]string{
		"Sans.json":   string(data),
		"ref.txt":     "\uFEFF国\n台\n湾\n# comment\n\n汉\n发\n",
		"chars.txt":   "国\t國\n发\t發\n汉\t漢\n",
		"phrases.txt": "臺灣\t臺灣\n",
		"t2s.txt":     "臺\t台\n灣\t湾\n",
	})
	a, err := New(fixtureConfig(t, dir))
	require.NoError(t, err)
	a.Now = func() time.Time { return time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, 5, a.Reference.Len())
	//
	input := filepath.Join(dir, "Sans.json")
	outputs, err := a.BuildFile(codec, input, "tw")
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, filepath.Join(dir, "out", "Sans-tw.json"), outputs[0].Path)
	assert.Equal(t, 1, outputs[0].Report.Words, "phrase keys are mapped to simplified forms")
	written, err := os.ReadFile(outputs[0].Path)
	require.NoError(t, err)
	f, err := codec.Decode(written)
	require.NoError(t, err)
	got, err := otpreview.Apply(f, "liga_s2t", "台湾国汉发")
	require.NoError(t, err)
	assert.Equal(t, "臺灣國漢發", got)
	assert.JSONEq(t, `{"fontRevision":2.001}`, string(f.Tables["head"]))
}

func TestBuildFileWritesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	codec := otfcc.JSONCodec{}
	data, err := codec.Encode(fixtureFont())
	require.NoError(t, err)
	writeFiles(t, dir, map[string]string{
		"Sans.json":   string(data),
		"ref.txt":     "国\n台\n湾\n",
		"chars.txt":   "国\t國\n",
		"phrases.txt": "臺灣\t臺灣\n",
		"t2s.txt":     "臺\t台\n灣\t湾\n",
	})
	a, err := New(fixtureConfig(t, dir))
	require.NoError(t, err)
	_, err = a.BuildFile(codec, filepath.Join(dir, "Sans.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variant broken")
	assert.NoDirExists(t, filepath.Join(dir, "out"))
	//
	_, err = a.BuildFile(codec, filepath.Join(dir, "Sans.json"), "hk")
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestBuildKeepsBase(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ref.txt":     "国\n",
		"chars.txt":   "国\t國\n",
		"phrases.txt": "",
		"t2s.txt":     "",
	})
	a, err := New(fixtureConfig(t, dir))
	require.NoError(t, err)
	base := fixtureFont()
	before := base.Clone()
	outputs, err := a.Build(otfcc.JSONCodec{}, base, "Sans.json", "tw")
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, before, base)
	assert.NotEmpty(t, outputs[0].Data)
}

func TestBuildFileStagesOutputs(t *testing.T) {
	dir := t.TempDir()
	codec := otfcc.JSONCodec{}
	data, err := codec.Encode(fixtureFont())
	require.NoError(t, err)
	writeFiles(t, dir, map[string]string{
		"Sans.json": string(data),
		"ref.txt":   "国\n",
		"chars.txt": "国\t國\n",
		"blocker":   "a file where a directory is expected",
	})
	cfg, err := ParseConfig([]byte(`
reference: ref.txt
variants:
  - {name: tw, locale: zh-TW, output: "out/{font}-tw.json", sources: [{path: chars.txt}]}
  - {name: hk, locale: zh-HK, output: "blocker/{font}-hk.json", sources: [{path: chars.txt}]}
`), dir)
	require.NoError(t, err)
	a, err := New(cfg)
	require.NoError(t, err)
	_, err = a.BuildFile(codec, filepath.Join(dir, "Sans.json"))
	require.Error(t, err, "output directory cannot be created")
	assert.NoFileExists(t, filepath.Join(dir, "out", "Sans-tw.json"))
	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Empty(t, entries, "staged files are removed")
	//
	outputs, err := a.BuildFile(codec, filepath.Join(dir, "Sans.json"), "tw")
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.FileExists(t, outputs[0].Path)
	entries, err = os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
