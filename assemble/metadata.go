package assemble

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/s2tfont/otfont"
)

// NameRecord is an entry of a font's name table, as found in glyph-table
// dumps.
type NameRecord struct {
	PlatformID int    `json:"platformID"`
	EncodingID int    `json:"encodingID"`
	LanguageID int    `json:"languageID"`
	NameID     int    `json:"nameID"`
	NameString string `json:"nameString"`
}

// Name IDs used for style detection.
const (
	nameSubfamily            = 2
	nameTypographicSubfamily = 17
)

// Placeholders in name header templates.
const (
	placeholderTypographic = "<Typographic Subfamily Name>"
	placeholderSubfamily   = "<Subfamily Name>"
	placeholderVersion     = "<Version>"
	placeholderDate        = "<Date>"
)

// ReadNameHeader reads a JSON array of name records.
func ReadNameHeader(path string) ([]NameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var header []NameRecord
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("name header %s: %w", path, err)
	}
	return header, nil
}

// NameTable decodes the name table of a font. A font without name table
// yields an empty list.
func NameTable(font *otfont.Font) ([]NameRecord, error) {
	raw, ok := font.Tables["name"]
	if !ok {
		return nil, nil
	}
	var names []NameRecord
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, otfont.FontError{Table: "name", Issue: err.Error(), Err: otfont.ErrMalformedTable}
	}
	return names, nil
}

// Style returns the typographic subfamily of a font, translated by styles if
// it is a known abbreviation.
func Style(names []NameRecord, styles map[string]string) string {
	style := ""
	for _, id := range []int{nameTypographicSubfamily, nameSubfamily} {
		for _, n := range names {
			if n.NameID == id && n.NameString != "" {
				style = n.NameString
				break
			}
		}
		if style != "" {
			break
		}
	}
	if full, ok := styles[style]; ok {
		return full
	}
	if style == "" {
		return "Regular"
	}
	return style
}

// ApplyMetadata renames a font. If header is non-empty it replaces the name
// table, with placeholders filled in; otherwise the existing names are kept.
// The replacements in rename are applied to every name string last.
// A positive revision is written to the head table.
func ApplyMetadata(font *otfont.Font, meta Metadata, header []NameRecord, rename map[string]string, now time.Time) error {
	names, err := NameTable(font)
	if err != nil {
		return err
	}
	if len(header) > 0 {
		typographic := Style(names, meta.Styles)
		subfamily := "Regular"
		if typographic == "Bold" {
			subfamily = "Bold"
		}
		r := strings.NewReplacer(
			placeholderTypographic, typographic,
			placeholderSubfamily, subfamily,
			placeholderVersion, strconv.FormatFloat(meta.Revision, 'f', -1, 64),
			placeholderDate, now.Format("Jan 02, 2006"),
		)
		names = make([]NameRecord, len(header))
		for i, n := range header {
			n.NameString = r.Replace(n.NameString)
			names[i] = n
		}
	}
	if len(rename) > 0 {
		r := renamer(rename)
		for i := range names {
			names[i].NameString = r.Replace(names[i].NameString)
		}
	}
	if names != nil {
		raw, err := json.Marshal(names)
		if err != nil {
			return err
		}
		font.Tables["name"] = raw
	}
	if meta.Revision > 0 {
		return setRevision(font, meta.Revision)
	}
	return nil
}

// renamer replaces in a single pass, preferring longer patterns.
func renamer(rename map[string]string) *strings.Replacer {
	keys := slices.Collect(maps.Keys(rename))
	slices.SortFunc(keys, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, rename[k])
	}
	return strings.NewReplacer(pairs...)
}

func setRevision(font *otfont.Font, revision float64) error {
	head := make(map[string]json.RawMessage)
	if raw, ok := font.Tables["head"]; ok {
		if err := json.Unmarshal(raw, &head); err != nil {
			return otfont.FontError{Table: "head", Issue: err.Error(), Err: otfont.ErrMalformedTable}
		}
	}
	head["fontRevision"] = json.RawMessage(strconv.FormatFloat(revision, 'f', -1, 64))
	raw, err := json.Marshal(head)
	if err != nil {
		return err
	}
	font.Tables["head"] = raw
	return nil
}
