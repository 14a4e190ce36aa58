package assemble

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const minimalConfig = `
reference: lists/tc.txt
variants:
  - name: tw
    locale: zh-Hant-TW
    sources:
      - path: dict/STCharacters.txt
      - path: dict/TWPhrases.txt
        key-map: [dict/TSCharacters.txt]
        value-map: [dict/TWVariants.txt]
    names:
      Sans SC: Sans TC
`

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(minimalConfig), "/build")
	require.NoError(t, err)
	assert.Equal(t, "liga_s2t", cfg.Feature)
	assert.Equal(t, 4000, cfg.SubtableMax)
	assert.Equal(t, 65535, cfg.GlyphCeiling)
	assert.Equal(t, "pseu%X", cfg.PseudoFormat)
	require.NotNil(t, cfg.Placeholder)
	assert.Equal(t, 1000, cfg.Placeholder.AdvanceHeight)
	//
	v, ok := cfg.Variant("tw")
	require.True(t, ok)
	assert.Equal(t, "{font}-tw.ttf", v.Output)
	assert.Equal(t, language.MustParse("zh-Hant-TW"), v.Tag())
	require.Len(t, v.Sources, 2)
	assert.Equal(t, []string{"dict/TSCharacters.txt"}, v.Sources[1].KeyMap)
	assert.Equal(t, "Sans TC", v.Names["Sans SC"])
	_, ok = cfg.Variant("hk")
	assert.False(t, ok)
	//
	assert.Equal(t, filepath.Join("/build", "lists/tc.txt"), cfg.Path(cfg.Reference))
	assert.Equal(t, "/abs/x", cfg.Path("/abs/x"))
	assert.Equal(t, filepath.Join("/build", "NotoSans-tw.ttf"), cfg.OutputPath(v, "/fonts/NotoSans.otf"))
	//
	opts := cfg.Options()
	assert.Equal(t, cfg.SubtableMax, opts.SubtableMax)
	assert.Equal(t, *cfg.Placeholder, opts.Placeholder)
}

func TestParseConfigOverrides(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
reference: tc.txt
feature: liga_t2s
subtable-max: 100
placeholder: {advance-width: 0, advance-height: 1024, vertical-origin: 900}
variants:
  - {name: cn, locale: zh-CN, output: "out/{font}.cn.ttf", sources: [{path: d.txt}]}
`), "")
	require.NoError(t, err)
	assert.Equal(t, "liga_t2s", cfg.Feature)
	assert.Equal(t, 100, cfg.SubtableMax)
	assert.Equal(t, 900, cfg.Placeholder.VerticalOrigin)
	v, _ := cfg.Variant("cn")
	assert.Equal(t, filepath.Join("out", "Font.cn.ttf"), cfg.OutputPath(v, "Font.ttf"))
}

func TestParseConfigErrors(t *testing.T) {
	for name, yml := range map[string]string{
		"syntax":           "reference: [",
		"no reference":     "variants: [{name: tw, locale: zh-TW, sources: [{path: d}]}]",
		"no variants":      "reference: r",
		"bad locale":       "reference: r\nvariants: [{name: tw, locale: 'zh_TW!!', sources: [{path: d}]}]",
		"duplicate":        "reference: r\nvariants: [{name: tw, locale: zh-TW, sources: [{path: d}]}, {name: tw, locale: zh-TW, sources: [{path: d}]}]",
		"no sources":       "reference: r\nvariants: [{name: tw, locale: zh-TW}]",
		"negative subtabs": "reference: r\nsubtable-max: -1\nvariants: [{name: tw, locale: zh-TW, sources: [{path: d}]}]",
		"huge ceiling":     "reference: r\nglyph-ceiling: 70000\nvariants: [{name: tw, locale: zh-TW, sources: [{path: d}]}]",
		"format":           "reference: r\npseudo-format: pseu\nvariants: [{name: tw, locale: zh-TW, sources: [{path: d}]}]",
	} {
		_, err := ParseConfig([]byte(yml), "")
		assert.True(t, errors.Is(err, ErrConfig), "%s: expected configuration error, got %v", name, err)
	}
}
