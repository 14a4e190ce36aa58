package otfont

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Sentinel glyphs which are always kept, whether referenced or not.
const (
	NotDef = ".notdef"
	Null   = ".null"
)

// MaxGlyphCount is the maximum number of glyphs an OpenType font can hold.
const MaxGlyphCount = 65535

// Font is a glyph-table view of a single font. It is owned by exactly one
// pipeline at a time and is not safe for concurrent use.
type Font struct {
	Glyphs     map[string]*Glyph
	GlyphOrder []string
	Cmap       *CharMap
	GSUB       *LayoutTable // may be nil
	GPOS       *LayoutTable // may be nil
	Tables     map[string]json.RawMessage
}

// Glyph is an outline glyph with its metrics. The outline itself is opaque to
// the pipeline.
type Glyph struct {
	AdvanceWidth   int
	AdvanceHeight  int
	VerticalOrigin int
	Vertical       bool // vertical metrics present
	Outline        map[string]json.RawMessage
}

// Metrics are the metrics of an empty glyph.
type Metrics struct {
	AdvanceWidth   int `yaml:"advance-width"`
	AdvanceHeight  int `yaml:"advance-height"`
	VerticalOrigin int `yaml:"vertical-origin"`
}

// PlaceholderMetrics are used for zero-width helper glyphs.
var PlaceholderMetrics = Metrics{AdvanceWidth: 0, AdvanceHeight: 1000, VerticalOrigin: 880}

// FontCodec translates between a binary font and its glyph-table view.
type FontCodec interface {
	Decode(data []byte) (*Font, error)
	Encode(font *Font) ([]byte, error)
}

// NewFont creates an empty font containing the two sentinel glyphs.
func NewFont() *Font {
	f := &Font{
		Glyphs: make(map[string]*Glyph),
		Cmap:   NewCharMap(),
		Tables: make(map[string]json.RawMessage),
	}
	f.InsertEmptyGlyph(NotDef, Metrics{})
	f.InsertEmptyGlyph(Null, Metrics{})
	return f
}

// NumGlyphs returns the number of glyphs in glyph order.
func (f *Font) NumGlyphs() int {
	return len(f.GlyphOrder)
}

// HasGlyph reports whether a glyph of the given name exists.
func (f *Font) HasGlyph(name string) bool {
	_, ok := f.Glyphs[name]
	return ok
}

// InsertEmptyGlyph adds a glyph without outline at the end of glyph order.
func (f *Font) InsertEmptyGlyph(name string, m Metrics) {
	f.Glyphs[name] = &Glyph{
		AdvanceWidth:   m.AdvanceWidth,
		AdvanceHeight:  m.AdvanceHeight,
		VerticalOrigin: m.VerticalOrigin,
		Vertical:       m.AdvanceHeight != 0 || m.VerticalOrigin != 0,
	}
	f.GlyphOrder = append(f.GlyphOrder, name)
}

// DeleteGlyphs removes glyphs from the glyph table and from glyph order. It
// does not touch the character map nor any layout table.
func (f *Font) DeleteGlyphs(names ...string) {
	if len(names) == 0 {
		return
	}
	dead := make(map[string]bool, len(names))
	for _, name := range names {
		dead[name] = true
		delete(f.Glyphs, name)
	}
	f.GlyphOrder = slices.DeleteFunc(f.GlyphOrder, func(name string) bool {
		return dead[name]
	})
	tracer().Debugf("deleted %d glyphs", len(dead))
}

// GlyphFor returns the glyph name for a code point or an error if the code
// point is not mapped.
func (f *Font) GlyphFor(r rune) (string, error) {
	if g, ok := f.Cmap.Glyph(r); ok {
		return g, nil
	}
	return "", FontError{Table: "cmap", Issue: fmt.Sprintf("no glyph for %U", r), Err: ErrMissingGlyph}
}

// GlyphsFor maps a sequence of code points to glyph names.
func (f *Font) GlyphsFor(rs []rune) ([]string, error) {
	names := make([]string, len(rs))
	for i, r := range rs {
		g, err := f.GlyphFor(r)
		if err != nil {
			return nil, err
		}
		names[i] = g
	}
	return names, nil
}

// LayoutTables returns the non-nil layout tables together with their tags.
func (f *Font) LayoutTables() map[string]*LayoutTable {
	lts := make(map[string]*LayoutTable, 2)
	if f.GSUB != nil {
		lts["GSUB"] = f.GSUB
	}
	if f.GPOS != nil {
		lts["GPOS"] = f.GPOS
	}
	return lts
}

// Clone returns a deep copy of the font. Opaque data is shared, as it is never
// mutated.
func (f *Font) Clone() *Font {
	c := &Font{
		Glyphs:     make(map[string]*Glyph, len(f.Glyphs)),
		GlyphOrder: slices.Clone(f.GlyphOrder),
		Cmap:       f.Cmap.Clone(),
		GSUB:       f.GSUB.Clone(),
		GPOS:       f.GPOS.Clone(),
		Tables:     maps.Clone(f.Tables),
	}
	for name, g := range f.Glyphs {
		gc := *g
		gc.Outline = maps.Clone(g.Outline)
		c.Glyphs[name] = &gc
	}
	return c
}

// Clone returns a deep copy of a layout table.
func (lt *LayoutTable) Clone() *LayoutTable {
	if lt == nil {
		return nil
	}
	c := &LayoutTable{
		Languages:   make(map[string]*LanguageSystem, len(lt.Languages)),
		Features:    make(map[string][]string, len(lt.Features)),
		Lookups:     make(map[string]*Lookup, len(lt.Lookups)),
		LookupOrder: slices.Clone(lt.LookupOrder),
		Extra:       maps.Clone(lt.Extra),
	}
	for name, ls := range lt.Languages {
		c.Languages[name] = &LanguageSystem{Features: slices.Clone(ls.Features), Extra: maps.Clone(ls.Extra)}
	}
	for name, lookups := range lt.Features {
		c.Features[name] = slices.Clone(lookups)
	}
	for name, lu := range lt.Lookups {
		c.Lookups[name] = &Lookup{Flags: lu.Flags, Extra: maps.Clone(lu.Extra), Rules: cloneRules(lu.Rules)}
	}
	return c
}

func cloneRules(rules Rules) Rules {
	switch r := rules.(type) {
	case *SingleSubst:
		c := &SingleSubst{}
		for _, st := range r.Subtables {
			c.Subtables = append(c.Subtables, maps.Clone(st))
		}
		return c
	case *MultipleSubst:
		return &MultipleSubst{Subtables: cloneSeqSubtables(r.Subtables)}
	case *AlternateSubst:
		return &AlternateSubst{Subtables: cloneSeqSubtables(r.Subtables)}
	case *LigatureSubst:
		c := &LigatureSubst{}
		for _, st := range r.Subtables {
			ligs := make([]Ligature, len(st.Substitutions))
			for i, lig := range st.Substitutions {
				ligs[i] = Ligature{From: slices.Clone(lig.From), To: lig.To}
			}
			c.Subtables = append(c.Subtables, LigatureSubtable{Substitutions: ligs})
		}
		return c
	case *SinglePos:
		c := &SinglePos{}
		for _, st := range r.Subtables {
			c.Subtables = append(c.Subtables, maps.Clone(st))
		}
		return c
	case *PairPos:
		c := &PairPos{}
		for _, st := range r.Subtables {
			c.Subtables = append(c.Subtables, PairSubtable{
				First:  maps.Clone(st.First),
				Second: maps.Clone(st.Second),
				Extra:  maps.Clone(st.Extra),
			})
		}
		return c
	case *UnknownRules:
		c := *r
		return &c
	}
	return rules
}

func cloneSeqSubtables(subtables []map[string][]string) []map[string][]string {
	var c []map[string][]string
	for _, st := range subtables {
		m := make(map[string][]string, len(st))
		for k, v := range st {
			m[k] = slices.Clone(v)
		}
		c = append(c, m)
	}
	return c
}
