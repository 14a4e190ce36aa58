package otfont

import (
	"encoding/json"
	"slices"
)

// LookupKind identifies the rule shape of a lookup.
type LookupKind int

// Lookup kinds known to the pipeline. The set is closed: fonts using other
// lookup types decode into KindUnknown and are rejected by every algorithm.
const (
	KindUnknown LookupKind = iota
	GSubSingle
	GSubMultiple
	GSubAlternate
	GSubLigature
	GPosSingle
	GPosPair
)

var lookupKindNames = map[LookupKind]string{
	GSubSingle:    "gsub_single",
	GSubMultiple:  "gsub_multiple",
	GSubAlternate: "gsub_alternate",
	GSubLigature:  "gsub_ligature",
	GPosSingle:    "gpos_single",
	GPosPair:      "gpos_pair",
}

// String returns the type tag of a lookup kind, as used in glyph-table dumps.
func (k LookupKind) String() string {
	if s, ok := lookupKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseLookupKind maps a type tag to a lookup kind. Unrecognized tags yield
// KindUnknown.
func ParseLookupKind(tag string) LookupKind {
	for k, s := range lookupKindNames {
		if s == tag {
			return k
		}
	}
	return KindUnknown
}

// Rules is the closed set of rule variants a lookup may carry. Only types of
// this package implement it.
type Rules interface {
	Kind() LookupKind
	sealed()
}

// SingleSubst replaces one glyph by another: {a: b}.
type SingleSubst struct {
	Subtables []map[string]string
}

// MultipleSubst replaces one glyph by a sequence of glyphs: {a: [b1, b2, …]}.
type MultipleSubst struct {
	Subtables []map[string][]string
}

// AlternateSubst offers a choice of alternates for a glyph: {a: [b1, b2, …]}.
type AlternateSubst struct {
	Subtables []map[string][]string
}

// LigatureSubst replaces a sequence of glyphs by one glyph.
type LigatureSubst struct {
	Subtables []LigatureSubtable
}

// LigatureSubtable is an ordered list of ligature rules. Within a subtable the
// first matching rule wins.
type LigatureSubtable struct {
	Substitutions []Ligature
}

// Ligature is a single rule {from: [a1, a2, …], to: b}.
type Ligature struct {
	From []string
	To   string
}

// SinglePos adjusts the position of single glyphs. Values are opaque.
type SinglePos struct {
	Subtables []map[string]json.RawMessage
}

// PairPos adjusts the positions of glyph pairs. First and Second assign
// classes to glyphs on either side independently; the class matrix is opaque.
type PairPos struct {
	Subtables []PairSubtable
}

// PairSubtable is one class-based pair positioning subtable.
type PairSubtable struct {
	First  map[string]int
	Second map[string]int
	Extra  map[string]json.RawMessage // matrix and other fields
}

// UnknownRules keeps lookups of unsupported types so that a font can be
// decoded and inspected. Any attempt to reason about them fails.
type UnknownRules struct {
	Type      string
	Subtables json.RawMessage
}

func (*SingleSubst) Kind() LookupKind    { return GSubSingle }
func (*MultipleSubst) Kind() LookupKind  { return GSubMultiple }
func (*AlternateSubst) Kind() LookupKind { return GSubAlternate }
func (*LigatureSubst) Kind() LookupKind  { return GSubLigature }
func (*SinglePos) Kind() LookupKind      { return GPosSingle }
func (*PairPos) Kind() LookupKind        { return GPosPair }
func (*UnknownRules) Kind() LookupKind   { return KindUnknown }

func (*SingleSubst) sealed()    {}
func (*MultipleSubst) sealed()  {}
func (*AlternateSubst) sealed() {}
func (*LigatureSubst) sealed()  {}
func (*SinglePos) sealed()      {}
func (*PairPos) sealed()        {}
func (*UnknownRules) sealed()   {}

// Lookup is a named lookup of a layout table.
type Lookup struct {
	Flags json.RawMessage
	Extra map[string]json.RawMessage
	Rules Rules
}

// TypeTag returns the type tag of the lookup, including the original tag of
// unknown lookups.
func (lu *Lookup) TypeTag() string {
	if u, ok := lu.Rules.(*UnknownRules); ok {
		return u.Type
	}
	return lu.Rules.Kind().String()
}

// LanguageSystem is a script/language entry of a layout table, e.g. "hani_DFLT".
type LanguageSystem struct {
	Features []string
	Extra    map[string]json.RawMessage
}

// LayoutTable is a GSUB or GPOS table: language systems referencing features,
// features referencing lookups, and the lookups themselves.
type LayoutTable struct {
	Languages   map[string]*LanguageSystem
	Features    map[string][]string
	Lookups     map[string]*Lookup
	LookupOrder []string
	Extra       map[string]json.RawMessage
}

// NewLayoutTable creates an empty layout table.
func NewLayoutTable() *LayoutTable {
	return &LayoutTable{
		Languages: make(map[string]*LanguageSystem),
		Features:  make(map[string][]string),
		Lookups:   make(map[string]*Lookup),
	}
}

// LookupsInOrder returns the lookups following the table's lookup order.
// Lookups missing from the order come last, sorted by name.
func (lt *LayoutTable) LookupsInOrder() []NamedLookup {
	if lt == nil {
		return nil
	}
	seen := make(map[string]bool, len(lt.Lookups))
	list := make([]NamedLookup, 0, len(lt.Lookups))
	for _, name := range lt.LookupOrder {
		if lu, ok := lt.Lookups[name]; ok && !seen[name] {
			list = append(list, NamedLookup{Name: name, Lookup: lu})
			seen[name] = true
		}
	}
	rest := make([]string, 0)
	for name := range lt.Lookups {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		list = append(list, NamedLookup{Name: name, Lookup: lt.Lookups[name]})
	}
	return list
}

// NamedLookup pairs a lookup with its name.
type NamedLookup struct {
	Name   string
	Lookup *Lookup
}
