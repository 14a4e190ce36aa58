// Package fontload reads binary fonts for inspection and rendering, without
// going through the glyph-table codec.
package fontload

import (
	"errors"
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/sfnt"
)

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	SFNT     *sfnt.Font
}

// Locate returns path unchanged if it names an existing file, otherwise it
// searches the system font directories for a font file of that name.
func Locate(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	found, err := findfont.Find(path)
	if err != nil {
		return "", fmt.Errorf("font %s not found: %w", path, err)
	}
	return found, nil
}

// LoadOpenTypeFont loads a font (TTF, OTF or collection) from a file. For
// collections, index selects the font.
func LoadOpenTypeFont(fontfile string, index int) (*ScalableFont, error) {
	path, err := Locate(fontfile)
	if err != nil {
		return nil, err
	}
	bytez, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOpenTypeFont(bytez, index)
}

// ParseOpenTypeFont loads a font from memory. Plain fonts ignore index.
func ParseOpenTypeFont(fbytes []byte, index int) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	coll, err := sfnt.ParseCollection(fbytes)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= coll.NumFonts() {
		return nil, fmt.Errorf("font index %d out of range, collection has %d fonts", index, coll.NumFonts())
	}
	if f.SFNT, err = coll.Font(index); err != nil {
		return nil, err
	}
	f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull)
	if errors.Is(err, sfnt.ErrNotFound) {
		err = nil
	}
	return f, err
}

// Summary describes a binary font.
type Summary struct {
	Name       string
	Family     string
	Subfamily  string
	Version    string
	NumGlyphs  int
	UnitsPerEm int
	Mapped     []rune // code points of the probe text the font maps
	Missing    []rune // code points of the probe text the font lacks
}

// Inspect summarizes a font and checks which code points of probe it maps.
func Inspect(f *ScalableFont, probe string) (*Summary, error) {
	var buf sfnt.Buffer
	s := &Summary{
		Name:       f.Fontname,
		NumGlyphs:  f.SFNT.NumGlyphs(),
		UnitsPerEm: int(f.SFNT.UnitsPerEm()),
	}
	for id, dst := range map[sfnt.NameID]*string{
		sfnt.NameIDFamily:    &s.Family,
		sfnt.NameIDSubfamily: &s.Subfamily,
		sfnt.NameIDVersion:   &s.Version,
	} {
		name, err := f.SFNT.Name(&buf, id)
		if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
			return nil, err
		}
		*dst = name
	}
	for _, r := range probe {
		gid, err := f.SFNT.GlyphIndex(&buf, r)
		if err != nil {
			return nil, err
		}
		if gid == 0 {
			s.Missing = append(s.Missing, r)
		} else {
			s.Mapped = append(s.Mapped, r)
		}
	}
	return s, nil
}
