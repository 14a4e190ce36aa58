package codepoints

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/s2tfont/otfont"
)

// Sets bundles the code point sets derived from a font. Final starts out as
// Retained ∪ Auxiliary and grows by Extend.
type Sets struct {
	Font      Set
	Retained  Set
	Auxiliary Set
	Final     Set
}

// Build computes the code point sets for a font, given the reference list of
// desired script code points and the auxiliary ranges. If aux is nil, the
// package default Auxiliary is used.
func Build(font *otfont.Font, reference Set, aux *unicode.RangeTable) *Sets {
	if aux == nil {
		aux = Auxiliary
	}
	fontSet := FontSet(font)
	s := &Sets{
		Font:      fontSet,
		Retained:  reference.Intersect(fontSet),
		Auxiliary: FromTable(aux).Intersect(fontSet),
	}
	s.Final = s.Retained.Union(s.Auxiliary)
	tracer().Infof("code points: font=%d retained=%d auxiliary=%d",
		s.Font.Len(), s.Retained.Len(), s.Auxiliary.Len())
	return s
}

// FontSet returns all code points mapped by a font.
func FontSet(font *otfont.Font) Set {
	return NewSet(font.Cmap.Runes()...)
}

// Extend adds conversion target code points to the final set. Targets must be
// renderable by the font.
func (s *Sets) Extend(targets Set) error {
	if !targets.IsSubset(s.Font) {
		missing := targets.Difference(s.Font).Sorted()
		return fmt.Errorf("%d conversion targets not covered by font, first is %U", len(missing), missing[0])
	}
	s.Final = s.Final.Union(targets)
	tracer().Infof("code points: final=%d", s.Final.Len())
	return nil
}

// Drop returns the code points of the font which are not in the final set.
func (s *Sets) Drop() Set {
	return s.Font.Difference(s.Final)
}
