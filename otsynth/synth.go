package otsynth

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/s2tfont/convdict"
	"github.com/npillmayer/s2tfont/otfont"
)

// Names of the three lookups making up the conversion feature.
const (
	LookupWordToPseudo = "word2pseu"
	LookupCharToChar   = "char2char"
	LookupPseudoToWord = "pseu2word"
)

// DefaultLanguageSystem is registered if a font declares no language system.
const DefaultLanguageSystem = "DFLT_DFLT"

// Options control the synthesized feature.
type Options struct {
	Feature      string         // feature name, e.g. "liga_s2t"
	SubtableMax  int            // maximum number of rules per subtable
	GlyphCeiling int            // maximum number of glyphs of the result
	PseudoFormat string         // fmt pattern naming placeholders by entry index
	Placeholder  otfont.Metrics // metrics of placeholder glyphs
}

// DefaultOptions returns the options used for building conversion fonts.
func DefaultOptions() Options {
	return Options{
		Feature:      "liga_s2t",
		SubtableMax:  4000,
		GlyphCeiling: otfont.MaxGlyphCount,
		PseudoFormat: "pseu%X",
		Placeholder:  otfont.PlaceholderMetrics,
	}
}

// Report summarizes a synthesis run.
type Report struct {
	Placeholders     int            // placeholder glyphs inserted
	CharRules        int            // rules in char2char
	IdentitySkipped  int            // character entries mapping a glyph to itself
	Collisions       int            // entries dropped because an earlier entry has the same source glyphs
	SubtablesPerLook map[string]int // number of subtables per lookup
}

// CheckCapacity reports an error if adding n glyphs would push the font past
// the glyph ceiling.
func CheckCapacity(font *otfont.Font, n, ceiling int) error {
	if ceiling <= 0 {
		ceiling = otfont.MaxGlyphCount
	}
	if font.NumGlyphs()+n > ceiling {
		return otfont.FontError{
			Table: "glyf",
			Issue: fmt.Sprintf("%d glyphs + %d placeholders > %d", font.NumGlyphs(), n, ceiling),
			Err:   otfont.ErrGlyphOverflow,
		}
	}
	return nil
}

type wordRule struct {
	from   []string
	pseudo string
	to     []string
}

type charRule struct {
	from, to string
}

// Synthesize installs the conversion feature for the given character and word
// entries. Entries must be in longest-match order and must only use code
// points the font maps.
//
// All checks happen before the font is touched: if Synthesize returns an
// error, the font is unchanged.
func Synthesize(font *otfont.Font, chars, words []convdict.Entry, opts Options) (*Report, error) {
	if opts.SubtableMax < 1 {
		return nil, fmt.Errorf("subtable maximum must be positive, is %d", opts.SubtableMax)
	}
	if err := CheckCapacity(font, len(words), opts.GlyphCeiling); err != nil {
		tracer().Errorf("cannot install %d word rules: %v", len(words), err)
		return nil, err
	}
	if err := checkNames(font, opts.Feature); err != nil {
		return nil, err
	}
	rep := &Report{SubtablesPerLook: make(map[string]int)}
	// resolve all glyphs first
	wordRules := make([]wordRule, 0, len(words))
	minted := make(map[string]bool, len(words))
	wordFrom := make(map[string][]rune, len(words))
	for i, e := range words {
		from, err := font.GlyphsFor(e.Key)
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", string(e.Key), err)
		}
		seq := strings.Join(from, " ")
		if first, ok := wordFrom[seq]; ok {
			rep.Collisions++
			tracer().Infof("word %q has the same glyphs as %q, dropping its rule", string(e.Key), string(first))
			continue
		}
		wordFrom[seq] = e.Key
		to, err := font.GlyphsFor(e.Value)
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", string(e.Key), err)
		}
		pseudo := fmt.Sprintf(opts.PseudoFormat, i)
		if font.HasGlyph(pseudo) || minted[pseudo] {
			return nil, otfont.FontError{Table: "glyf", Issue: fmt.Sprintf("placeholder name %q taken", pseudo),
				Err: otfont.ErrFeatureExists}
		}
		minted[pseudo] = true
		wordRules = append(wordRules, wordRule{from: from, pseudo: pseudo, to: to})
	}
	charRules := make([]charRule, 0, len(chars))
	charFrom := make(map[string]rune, len(chars))
	for _, e := range chars {
		from, err := font.GlyphFor(e.Key[0])
		if err != nil {
			return nil, fmt.Errorf("character %q: %w", string(e.Key), err)
		}
		to, err := font.GlyphFor(e.Value[0])
		if err != nil {
			return nil, fmt.Errorf("character %q: %w", string(e.Key), err)
		}
		if from == to {
			rep.IdentitySkipped++
			continue
		}
		// code points sharing a glyph: the first entry in longest-match order wins
		if first, ok := charFrom[from]; ok {
			rep.Collisions++
			tracer().Infof("character %q shares glyph %s with %q, dropping its rule", string(e.Key), from, string(first))
			continue
		}
		charFrom[from] = e.Key[0]
		charRules = append(charRules, charRule{from: from, to: to})
	}
	// from here on the font is mutated
	for _, w := range wordRules {
		font.InsertEmptyGlyph(w.pseudo, opts.Placeholder)
	}
	rep.Placeholders = len(wordRules)
	rep.CharRules = len(charRules)
	if font.GSUB == nil {
		font.GSUB = otfont.NewLayoutTable()
	}
	if font.GSUB.Lookups == nil {
		font.GSUB.Lookups = make(map[string]*otfont.Lookup)
	}
	lookups := map[string]otfont.Rules{
		LookupWordToPseudo: wordToPseudo(wordRules, opts.SubtableMax),
		LookupCharToChar:   charToChar(charRules, opts.SubtableMax),
		LookupPseudoToWord: pseudoToWord(wordRules, opts.SubtableMax),
	}
	order := []string{LookupWordToPseudo, LookupCharToChar, LookupPseudoToWord}
	for _, name := range order {
		font.GSUB.Lookups[name] = &otfont.Lookup{Flags: json.RawMessage("{}"), Rules: lookups[name]}
		font.GSUB.LookupOrder = append(font.GSUB.LookupOrder, name)
		rep.SubtablesPerLook[name] = subtableCount(lookups[name])
	}
	installFeature(font.GSUB, opts.Feature, order)
	tracer().Infof("installed feature %s: %d word rules, %d character rules, %d glyphs total",
		opts.Feature, len(wordRules), len(charRules), font.NumGlyphs())
	return rep, nil
}

func checkNames(font *otfont.Font, feature string) error {
	if font.GSUB == nil {
		return nil
	}
	if _, ok := font.GSUB.Features[feature]; ok {
		return otfont.FontError{Table: "GSUB", Section: feature, Issue: "feature is already installed",
			Err: otfont.ErrFeatureExists}
	}
	for _, name := range []string{LookupWordToPseudo, LookupCharToChar, LookupPseudoToWord} {
		if _, ok := font.GSUB.Lookups[name]; ok {
			return otfont.FontError{Table: "GSUB", Section: name, Issue: "lookup name is taken",
				Err: otfont.ErrFeatureExists}
		}
	}
	return nil
}

func wordToPseudo(rules []wordRule, limit int) *otfont.LigatureSubst {
	lu := &otfont.LigatureSubst{}
	byKeyLen := func(w wordRule) int { return len(w.from) }
	for _, chunk := range Chunk(rules, limit, byKeyLen) {
		st := otfont.LigatureSubtable{Substitutions: make([]otfont.Ligature, len(chunk))}
		for i, w := range chunk {
			st.Substitutions[i] = otfont.Ligature{From: w.from, To: w.pseudo}
		}
		lu.Subtables = append(lu.Subtables, st)
	}
	return lu
}

func charToChar(rules []charRule, limit int) *otfont.SingleSubst {
	lu := &otfont.SingleSubst{}
	for _, chunk := range Chunk(rules, limit, nil) {
		st := make(map[string]string, len(chunk))
		for _, c := range chunk {
			st[c.from] = c.to
		}
		lu.Subtables = append(lu.Subtables, st)
	}
	return lu
}

func pseudoToWord(rules []wordRule, limit int) *otfont.MultipleSubst {
	lu := &otfont.MultipleSubst{}
	byValueLen := func(w wordRule) int { return len(w.to) }
	for _, chunk := range Chunk(rules, limit, byValueLen) {
		st := make(map[string][]string, len(chunk))
		for _, w := range chunk {
			st[w.pseudo] = w.to
		}
		lu.Subtables = append(lu.Subtables, st)
	}
	return lu
}

func subtableCount(rules otfont.Rules) int {
	switch r := rules.(type) {
	case *otfont.LigatureSubst:
		return len(r.Subtables)
	case *otfont.SingleSubst:
		return len(r.Subtables)
	case *otfont.MultipleSubst:
		return len(r.Subtables)
	}
	return 0
}

// installFeature registers a feature with its lookups and attaches it to every
// language system of the table.
func installFeature(gsub *otfont.LayoutTable, feature string, lookups []string) {
	if gsub.Features == nil {
		gsub.Features = make(map[string][]string)
	}
	if gsub.Languages == nil {
		gsub.Languages = make(map[string]*otfont.LanguageSystem)
	}
	if len(gsub.Languages) == 0 {
		tracer().Infof("font declares no language system, adding %s", DefaultLanguageSystem)
		gsub.Languages[DefaultLanguageSystem] = &otfont.LanguageSystem{}
	}
	for _, ls := range gsub.Languages {
		if !slices.Contains(ls.Features, feature) {
			ls.Features = append(ls.Features, feature)
		}
	}
	gsub.Features[feature] = slices.Clone(lookups)
}
