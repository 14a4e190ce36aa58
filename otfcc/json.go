package otfcc

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/npillmayer/s2tfont/otfont"
)

// JSONCodec decodes and encodes otfcc JSON dumps.
type JSONCodec struct {
	Indent bool // pretty-print output
}

var _ otfont.FontCodec = JSONCodec{}

// Decode parses an otfcc JSON dump.
func (c JSONCodec) Decode(data []byte) (*otfont.Font, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("otfcc: %w", err)
	}
	f := &otfont.Font{
		Glyphs: make(map[string]*otfont.Glyph),
		Cmap:   otfont.NewCharMap(),
		Tables: make(map[string]json.RawMessage),
	}
	for key, val := range top {
		var err error
		switch key {
		case "glyf":
			err = decodeGlyphs(f, val)
		case "glyph_order":
			err = json.Unmarshal(val, &f.GlyphOrder)
		case "cmap":
			err = decodeCmap(f, val)
		case "GSUB":
			f.GSUB, err = decodeLayout(val)
		case "GPOS":
			f.GPOS, err = decodeLayout(val)
		default:
			f.Tables[key] = val
		}
		if err != nil {
			return nil, fmt.Errorf("otfcc: table %s: %w", key, err)
		}
	}
	if f.GlyphOrder == nil {
		f.GlyphOrder = deriveGlyphOrder(f.Glyphs)
	}
	tracer().Debugf("decoded font with %d glyphs, %d code points", f.NumGlyphs(), f.Cmap.Len())
	return f, nil
}

// Encode serializes a font to otfcc JSON.
func (c JSONCodec) Encode(f *otfont.Font) ([]byte, error) {
	top := make(map[string]any, len(f.Tables)+5)
	for key, val := range f.Tables {
		top[key] = val
	}
	glyf := make(map[string]any, len(f.Glyphs))
	for name, g := range f.Glyphs {
		glyf[name] = encodeGlyph(g)
	}
	top["glyf"] = glyf
	top["glyph_order"] = f.GlyphOrder
	cmap := make(map[string]string, f.Cmap.Len())
	for r, g := range f.Cmap.All() {
		cmap[strconv.Itoa(int(r))] = g
	}
	top["cmap"] = cmap
	if f.GSUB != nil {
		top["GSUB"] = encodeLayout(f.GSUB)
	}
	if f.GPOS != nil {
		top["GPOS"] = encodeLayout(f.GPOS)
	}
	if c.Indent {
		return json.MarshalIndent(top, "", "  ")
	}
	return json.Marshal(top)
}

// --- Glyphs and cmap -------------------------------------------------------

func decodeGlyphs(f *otfont.Font, data json.RawMessage) error {
	var glyf map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &glyf); err != nil {
		return err
	}
	for name, fields := range glyf {
		g := &otfont.Glyph{Outline: fields}
		var err error
		if g.AdvanceWidth, _, err = popInt(fields, "advanceWidth"); err != nil {
			return fmt.Errorf("glyph %q: %w", name, err)
		}
		var hasHeight, hasOrigin bool
		if g.AdvanceHeight, hasHeight, err = popInt(fields, "advanceHeight"); err != nil {
			return fmt.Errorf("glyph %q: %w", name, err)
		}
		if g.VerticalOrigin, hasOrigin, err = popInt(fields, "verticalOrigin"); err != nil {
			return fmt.Errorf("glyph %q: %w", name, err)
		}
		g.Vertical = hasHeight || hasOrigin
		f.Glyphs[name] = g
	}
	return nil
}

func popInt(fields map[string]json.RawMessage, key string) (int, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, false, nil
	}
	delete(fields, key)
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return int(math.Round(v)), true, nil
}

func encodeGlyph(g *otfont.Glyph) map[string]any {
	m := make(map[string]any, len(g.Outline)+3)
	for k, v := range g.Outline {
		m[k] = v
	}
	m["advanceWidth"] = g.AdvanceWidth
	if g.Vertical {
		m["advanceHeight"] = g.AdvanceHeight
		m["verticalOrigin"] = g.VerticalOrigin
	}
	return m
}

func decodeCmap(f *otfont.Font, data json.RawMessage) error {
	var cmap map[string]string
	if err := json.Unmarshal(data, &cmap); err != nil {
		return err
	}
	for key, glyph := range cmap {
		cp, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("invalid code point %q", key)
		}
		f.Cmap.Map(rune(cp), glyph)
	}
	return nil
}

// deriveGlyphOrder is used for dumps without explicit glyph order: sentinels
// first, then by name.
func deriveGlyphOrder(glyphs map[string]*otfont.Glyph) []string {
	order := make([]string, 0, len(glyphs))
	for name := range glyphs {
		if name != otfont.NotDef && name != otfont.Null {
			order = append(order, name)
		}
	}
	slices.Sort(order)
	for _, s := range []string{otfont.Null, otfont.NotDef} {
		if _, ok := glyphs[s]; ok {
			order = slices.Insert(order, 0, s)
		}
	}
	return order
}

// --- Layout tables ---------------------------------------------------------

func decodeLayout(data json.RawMessage) (*otfont.LayoutTable, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	lt := otfont.NewLayoutTable()
	if raw, ok := fields["languages"]; ok {
		var langs map[string]map[string]json.RawMessage
		if err := json.Unmarshal(raw, &langs); err != nil {
			return nil, fmt.Errorf("languages: %w", err)
		}
		for name, lfields := range langs {
			ls := &otfont.LanguageSystem{Extra: lfields}
			if rf, ok := lfields["features"]; ok {
				if err := json.Unmarshal(rf, &ls.Features); err != nil {
					return nil, fmt.Errorf("language %s: %w", name, err)
				}
				delete(lfields, "features")
			}
			lt.Languages[name] = ls
		}
		delete(fields, "languages")
	}
	if raw, ok := fields["features"]; ok {
		var features map[string][]string
		if err := json.Unmarshal(raw, &features); err != nil {
			return nil, fmt.Errorf("features: %w", err)
		}
		maps.Copy(lt.Features, features)
		delete(fields, "features")
	}
	if raw, ok := fields["lookupOrder"]; ok {
		if err := json.Unmarshal(raw, &lt.LookupOrder); err != nil {
			return nil, fmt.Errorf("lookupOrder: %w", err)
		}
		delete(fields, "lookupOrder")
	}
	if raw, ok := fields["lookups"]; ok {
		var lookups map[string]map[string]json.RawMessage
		if err := json.Unmarshal(raw, &lookups); err != nil {
			return nil, fmt.Errorf("lookups: %w", err)
		}
		for name, lfields := range lookups {
			if lfields == nil {
				return nil, fmt.Errorf("lookup %s is null", name)
			}
			lu, err := decodeLookup(lfields)
			if err != nil {
				return nil, fmt.Errorf("lookup %s: %w", name, err)
			}
			lt.Lookups[name] = lu
		}
		delete(fields, "lookups")
	}
	if len(fields) > 0 {
		lt.Extra = fields
	}
	return lt, nil
}

type ligatureJSON struct {
	From []string `json:"from"`
	To   string   `json:"to"`
}

type ligatureSubtableJSON struct {
	Substitutions []ligatureJSON `json:"substitutions"`
}

func decodeLookup(fields map[string]json.RawMessage) (*otfont.Lookup, error) {
	var typ string
	if err := json.Unmarshal(fields["type"], &typ); err != nil {
		return nil, fmt.Errorf("type: %w", err)
	}
	lu := &otfont.Lookup{Flags: fields["flags"]}
	subtables := fields["subtables"]
	delete(fields, "type")
	delete(fields, "flags")
	delete(fields, "subtables")
	if len(fields) > 0 {
		lu.Extra = fields
	}
	if subtables == nil {
		subtables = json.RawMessage("[]")
	}
	var err error
	switch otfont.ParseLookupKind(typ) {
	case otfont.GSubSingle:
		r := &otfont.SingleSubst{}
		err = json.Unmarshal(subtables, &r.Subtables)
		lu.Rules = r
	case otfont.GSubMultiple:
		r := &otfont.MultipleSubst{}
		err = json.Unmarshal(subtables, &r.Subtables)
		lu.Rules = r
	case otfont.GSubAlternate:
		r := &otfont.AlternateSubst{}
		err = json.Unmarshal(subtables, &r.Subtables)
		lu.Rules = r
	case otfont.GSubLigature:
		var sts []ligatureSubtableJSON
		err = json.Unmarshal(subtables, &sts)
		r := &otfont.LigatureSubst{}
		for _, st := range sts {
			ligs := make([]otfont.Ligature, len(st.Substitutions))
			for i, l := range st.Substitutions {
				ligs[i] = otfont.Ligature{From: l.From, To: l.To}
			}
			r.Subtables = append(r.Subtables, otfont.LigatureSubtable{Substitutions: ligs})
		}
		lu.Rules = r
	case otfont.GPosSingle:
		r := &otfont.SinglePos{}
		err = json.Unmarshal(subtables, &r.Subtables)
		lu.Rules = r
	case otfont.GPosPair:
		lu.Rules, err = decodePairPos(subtables)
	default:
		tracer().Debugf("keeping lookup of unsupported type %q", typ)
		lu.Rules = &otfont.UnknownRules{Type: typ, Subtables: subtables}
	}
	if err != nil {
		return nil, fmt.Errorf("%s subtables: %w", typ, err)
	}
	return lu, nil
}

func decodePairPos(data json.RawMessage) (*otfont.PairPos, error) {
	var sts []map[string]json.RawMessage
	if err := json.Unmarshal(data, &sts); err != nil {
		return nil, err
	}
	r := &otfont.PairPos{}
	for _, fields := range sts {
		st := otfont.PairSubtable{First: map[string]int{}, Second: map[string]int{}}
		if raw, ok := fields["first"]; ok {
			if err := json.Unmarshal(raw, &st.First); err != nil {
				return nil, fmt.Errorf("first: %w", err)
			}
			delete(fields, "first")
		}
		if raw, ok := fields["second"]; ok {
			if err := json.Unmarshal(raw, &st.Second); err != nil {
				return nil, fmt.Errorf("second: %w", err)
			}
			delete(fields, "second")
		}
		st.Extra = fields
		r.Subtables = append(r.Subtables, st)
	}
	return r, nil
}

func encodeLayout(lt *otfont.LayoutTable) map[string]any {
	m := make(map[string]any, len(lt.Extra)+4)
	for k, v := range lt.Extra {
		m[k] = v
	}
	langs := make(map[string]any, len(lt.Languages))
	for name, ls := range lt.Languages {
		l := make(map[string]any, len(ls.Extra)+1)
		for k, v := range ls.Extra {
			l[k] = v
		}
		l["features"] = nonNil(ls.Features)
		langs[name] = l
	}
	m["languages"] = langs
	m["features"] = lt.Features
	lookups := make(map[string]any, len(lt.Lookups))
	for name, lu := range lt.Lookups {
		lookups[name] = encodeLookup(lu)
	}
	m["lookups"] = lookups
	m["lookupOrder"] = nonNil(lt.LookupOrder)
	return m
}

func encodeLookup(lu *otfont.Lookup) map[string]any {
	m := make(map[string]any, len(lu.Extra)+3)
	for k, v := range lu.Extra {
		m[k] = v
	}
	m["type"] = lu.TypeTag()
	if lu.Flags != nil {
		m["flags"] = lu.Flags
	} else {
		m["flags"] = struct{}{}
	}
	switch r := lu.Rules.(type) {
	case *otfont.SingleSubst:
		m["subtables"] = nonNil(r.Subtables)
	case *otfont.MultipleSubst:
		m["subtables"] = nonNil(r.Subtables)
	case *otfont.AlternateSubst:
		m["subtables"] = nonNil(r.Subtables)
	case *otfont.LigatureSubst:
		sts := make([]ligatureSubtableJSON, len(r.Subtables))
		for i, st := range r.Subtables {
			ligs := make([]ligatureJSON, len(st.Substitutions))
			for j, l := range st.Substitutions {
				ligs[j] = ligatureJSON{From: l.From, To: l.To}
			}
			sts[i] = ligatureSubtableJSON{Substitutions: ligs}
		}
		m["subtables"] = sts
	case *otfont.SinglePos:
		m["subtables"] = nonNil(r.Subtables)
	case *otfont.PairPos:
		sts := make([]map[string]any, len(r.Subtables))
		for i, st := range r.Subtables {
			s := make(map[string]any, len(st.Extra)+2)
			for k, v := range st.Extra {
				s[k] = v
			}
			s["first"] = st.First
			s["second"] = st.Second
			sts[i] = s
		}
		m["subtables"] = sts
	case *otfont.UnknownRules:
		m["subtables"] = r.Subtables
	}
	return m
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
