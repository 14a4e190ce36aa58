package assemble

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode"

	"github.com/npillmayer/s2tfont/codepoints"
	"github.com/npillmayer/s2tfont/convdict"
	"github.com/npillmayer/s2tfont/otfont"
	"github.com/npillmayer/s2tfont/otprune"
	"github.com/npillmayer/s2tfont/otsynth"
)

// Assembler runs the pipeline for the variants of a configuration.
type Assembler struct {
	Config    *Config
	Reference codepoints.Set      // desired script code points
	Auxiliary *unicode.RangeTable // non-script code points to keep
	Names     []NameRecord        // name header template, may be empty
	Now       func() time.Time    // date source for name strings
}

// New creates an assembler, reading the reference list and auxiliary ranges
// named by the configuration.
func New(cfg *Config) (*Assembler, error) {
	f, err := os.Open(cfg.Path(cfg.Reference))
	if err != nil {
		return nil, fmt.Errorf("reference list: %w", err)
	}
	defer f.Close()
	ref, err := codepoints.ReadReference(f)
	if err != nil {
		return nil, fmt.Errorf("reference list: %w", err)
	}
	a := &Assembler{Config: cfg, Reference: ref, Now: time.Now}
	if len(cfg.Auxiliary) > 0 {
		if a.Auxiliary, err = codepoints.ParseRanges(cfg.Auxiliary); err != nil {
			return nil, fmt.Errorf("%w: auxiliary ranges: %v", ErrConfig, err)
		}
	}
	if cfg.Metadata.NameHeader != "" {
		if a.Names, err = ReadNameHeader(cfg.Path(cfg.Metadata.NameHeader)); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Report summarizes the pipeline run of one variant.
type Report struct {
	Variant    string
	Codepoints *codepoints.Sets
	Dictionary convdict.SourceStats
	Chars      int // character entries
	Words      int // word entries
	Prune      *otprune.Report
	Synth      *otsynth.Report
	Glyphs     int // glyph count of the result
}

// Run converts font in place for a variant, reading dictionary entries from
// sources in priority order, lowest first.
func (a *Assembler) Run(font *otfont.Font, variant string, sources ...convdict.Source) (*Report, error) {
	rep := &Report{Variant: variant}
	// 1. code point sets
	rep.Codepoints = codepoints.Build(font, a.Reference, a.Auxiliary)
	// 2. conversion tables
	b := convdict.NewBuilder(rep.Codepoints.Retained, rep.Codepoints.Font)
	for _, src := range sources {
		if _, err := b.Add(src); err != nil {
			return rep, err
		}
	}
	rep.Dictionary = b.Stats()
	tables := b.Tables()
	rep.Chars, rep.Words = len(tables.Chars), len(tables.Words)
	if err := rep.Codepoints.Extend(tables.Targets); err != nil {
		return rep, err
	}
	// 3. pruning
	drop := rep.Codepoints.Drop()
	tracer().Infof("variant %s: dropping %d code points", variant, drop.Len())
	var err error
	if rep.Prune, err = otprune.Prune(font, rep.Codepoints.Final); err != nil {
		tracer().Errorf("variant %s: %v", variant, err)
		return rep, err
	}
	if rep.Prune.DroppedCodepoints != drop.Len() {
		err = otfont.FontError{
			Table: "cmap",
			Issue: fmt.Sprintf("pruning detached %d code points, expected %d", rep.Prune.DroppedCodepoints, drop.Len()),
			Err:   otfont.ErrCmapInconsistent,
		}
		tracer().Errorf("variant %s: %v", variant, err)
		return rep, err
	}
	// 4. capacity
	opts := a.Config.Options()
	if err := otsynth.CheckCapacity(font, len(tables.Words), opts.GlyphCeiling); err != nil {
		tracer().Errorf("variant %s: %v", variant, err)
		return rep, err
	}
	// 5. synthesis
	if rep.Synth, err = otsynth.Synthesize(font, tables.Chars, tables.Words, opts); err != nil {
		tracer().Errorf("variant %s: %v", variant, err)
		return rep, err
	}
	rep.Glyphs = font.NumGlyphs()
	tracer().Infof("variant %s: %d glyphs, %d character and %d word rules",
		variant, rep.Glyphs, rep.Chars, rep.Words)
	return rep, nil
}

// RunVariant opens the dictionary sources of a variant and converts font in
// place.
func (a *Assembler) RunVariant(font *otfont.Font, v Variant) (*Report, error) {
	sources, closer, err := a.openSources(v)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	tracer().Infof("variant %s (%s): %d dictionary sources", v.Name, v.Tag(), len(sources))
	return a.Run(font, v.Name, sources...)
}

type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func (a *Assembler) openSources(v Variant) ([]convdict.Source, io.Closer, error) {
	var open closers
	sources := make([]convdict.Source, 0, len(v.Sources))
	for _, s := range v.Sources {
		src, c, err := convdict.OpenSource(a.Config.Path(s.Path))
		if err != nil {
			open.Close()
			return nil, nil, err
		}
		open = append(open, c)
		if src.KeyMap, err = a.loadMapper(s.KeyMap); err != nil {
			open.Close()
			return nil, nil, err
		}
		if src.ValueMap, err = a.loadMapper(s.ValueMap); err != nil {
			open.Close()
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	return sources, open, nil
}

// loadMapper loads converter dictionaries, applied one after the other.
func (a *Assembler) loadMapper(paths []string) (convdict.Mapper, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	var chain convdict.Chain
	for _, p := range paths {
		f, err := os.Open(a.Config.Path(p))
		if err != nil {
			return nil, fmt.Errorf("converter dictionary: %w", err)
		}
		conv, err := convdict.LoadConverter(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("converter dictionary %s: %w", p, err)
		}
		chain = append(chain, conv)
	}
	return chain, nil
}
