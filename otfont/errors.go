package otfont

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLookupType is returned when a lookup uses a rule type outside the
	// closed set this module can reason about.
	ErrUnknownLookupType = errors.New("unknown lookup type")
	// ErrCmapInconsistent flags a violation of the cmap/cmap-rev invariant.
	ErrCmapInconsistent = errors.New("cmap inconsistent")
	// ErrGlyphOverflow is returned if a font would exceed the glyph ceiling.
	ErrGlyphOverflow = errors.New("glyph count exceeds ceiling")
	// ErrMissingGlyph is returned if a code point has no glyph where one is required.
	ErrMissingGlyph = errors.New("missing glyph")
	// ErrFeatureExists is returned when installing a feature or lookup under a
	// name which is already taken.
	ErrFeatureExists = errors.New("feature already exists")
	// ErrMalformedTable is returned if a table kept as raw data cannot be read.
	ErrMalformedTable = errors.New("malformed table")
)

// FontError represents an error encountered while reading or transforming a
// font structure. It wraps one of the sentinel errors of this package.
type FontError struct {
	Table   string // table where the error occurred (e.g., "GSUB", "GPOS", "cmap")
	Section string // specific section within the table, e.g. a lookup name
	Issue   string // human-readable description of the issue
	Err     error  // sentinel error
}

// Error implements the error interface.
func (e FontError) Error() string {
	if e.Err == nil {
		if e.Section != "" {
			return fmt.Sprintf("%s/%s: %s", e.Table, e.Section, e.Issue)
		}
		return fmt.Sprintf("%s: %s", e.Table, e.Issue)
	}
	if e.Section != "" {
		return fmt.Sprintf("%s/%s: %s: %s", e.Table, e.Section, e.Err, e.Issue)
	}
	return fmt.Sprintf("%s: %s: %s", e.Table, e.Err, e.Issue)
}

// Unwrap returns the sentinel error, making FontError usable with errors.Is.
func (e FontError) Unwrap() error {
	return e.Err
}

// UnknownLookup creates an error for a lookup with an unsupported rule type.
func UnknownLookup(table, lookup, typ string) error {
	return FontError{
		Table:   table,
		Section: lookup,
		Issue:   fmt.Sprintf("cannot handle lookup type %q", typ),
		Err:     ErrUnknownLookupType,
	}
}
