package assemble

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/s2tfont/otfont"
	"github.com/npillmayer/s2tfont/otsynth"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config is a build configuration.
type Config struct {
	Reference    string          `yaml:"reference"`     // reference list of code points to keep
	Auxiliary    []string        `yaml:"auxiliary"`     // ranges like "3000-301C"; empty selects the default
	Feature      string          `yaml:"feature"`       // GSUB feature name
	SubtableMax  int             `yaml:"subtable-max"`  // rules per subtable
	GlyphCeiling int             `yaml:"glyph-ceiling"` // maximum glyph count of a result
	PseudoFormat string          `yaml:"pseudo-format"` // placeholder naming pattern
	Placeholder  *otfont.Metrics `yaml:"placeholder"`   // placeholder metrics
	TTCIndex     int             `yaml:"ttc-index"`     // font to select from a collection
	Metadata     Metadata        `yaml:"metadata"`
	Variants     []Variant       `yaml:"variants"`

	dir string // directory relative paths are resolved against
}

// Variant is one output font flavour.
type Variant struct {
	Name    string            `yaml:"name"`
	Locale  string            `yaml:"locale"` // BCP 47 tag of the target orthography
	Output  string            `yaml:"output"` // output path; "{font}" is replaced by the input base name
	Sources []Source          `yaml:"sources"`
	Names   map[string]string `yaml:"names"` // replacements applied to name strings

	tag language.Tag
}

// Tag returns the parsed locale of a validated variant.
func (v Variant) Tag() language.Tag {
	return v.tag
}

// Source is a dictionary file. KeyMap and ValueMap list converter
// dictionaries applied to keys and values of the file, respectively.
type Source struct {
	Path     string   `yaml:"path"`
	KeyMap   []string `yaml:"key-map"`
	ValueMap []string `yaml:"value-map"`
}

// Metadata controls the naming of output fonts.
type Metadata struct {
	Revision   float64           `yaml:"revision"`    // font revision written to head; 0 leaves it alone
	NameHeader string            `yaml:"name-header"` // JSON file of name records replacing the name table
	Styles     map[string]string `yaml:"styles"`      // style abbreviation → typographic subfamily
}

// ErrConfig is wrapped by every configuration error.
var ErrConfig = errors.New("invalid build configuration")

// LoadConfig reads a YAML configuration file. Relative paths within the file
// are resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data, filepath.Dir(path))
}

// ParseConfig parses a YAML configuration, fills in defaults and validates it.
func ParseConfig(data []byte, dir string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	cfg.dir = dir
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) setDefaults() {
	def := otsynth.DefaultOptions()
	if cfg.Feature == "" {
		cfg.Feature = def.Feature
	}
	if cfg.SubtableMax == 0 {
		cfg.SubtableMax = def.SubtableMax
	}
	if cfg.GlyphCeiling == 0 {
		cfg.GlyphCeiling = def.GlyphCeiling
	}
	if cfg.PseudoFormat == "" {
		cfg.PseudoFormat = def.PseudoFormat
	}
	if cfg.Placeholder == nil {
		m := def.Placeholder
		cfg.Placeholder = &m
	}
}

func (cfg *Config) validate() error {
	if cfg.Reference == "" {
		return fmt.Errorf("%w: no reference list", ErrConfig)
	}
	if cfg.SubtableMax < 1 {
		return fmt.Errorf("%w: subtable-max must be positive", ErrConfig)
	}
	if cfg.GlyphCeiling < 1 || cfg.GlyphCeiling > otfont.MaxGlyphCount {
		return fmt.Errorf("%w: glyph-ceiling must be in 1…%d", ErrConfig, otfont.MaxGlyphCount)
	}
	if !strings.Contains(cfg.PseudoFormat, "%") {
		return fmt.Errorf("%w: pseudo-format %q has no verb", ErrConfig, cfg.PseudoFormat)
	}
	if len(cfg.Variants) == 0 {
		return fmt.Errorf("%w: no variants", ErrConfig)
	}
	seen := make(map[string]bool)
	for i := range cfg.Variants {
		v := &cfg.Variants[i]
		if v.Name == "" || seen[v.Name] {
			return fmt.Errorf("%w: variant #%d has an empty or duplicate name", ErrConfig, i)
		}
		seen[v.Name] = true
		tag, err := language.Parse(v.Locale)
		if err != nil {
			return fmt.Errorf("%w: variant %s: locale %q: %v", ErrConfig, v.Name, v.Locale, err)
		}
		v.tag = tag
		if len(v.Sources) == 0 {
			return fmt.Errorf("%w: variant %s has no dictionary sources", ErrConfig, v.Name)
		}
		if v.Output == "" {
			v.Output = "{font}-" + v.Name + ".ttf"
		}
	}
	return nil
}

// Options returns the synthesis options of the configuration.
func (cfg *Config) Options() otsynth.Options {
	return otsynth.Options{
		Feature:      cfg.Feature,
		SubtableMax:  cfg.SubtableMax,
		GlyphCeiling: cfg.GlyphCeiling,
		PseudoFormat: cfg.PseudoFormat,
		Placeholder:  *cfg.Placeholder,
	}
}

// Variant returns the variant of the given name.
func (cfg *Config) Variant(name string) (Variant, bool) {
	for _, v := range cfg.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Path resolves a path of the configuration.
func (cfg *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.dir, p)
}

// OutputPath returns the output path of a variant for an input font path.
func (cfg *Config) OutputPath(v Variant, input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return cfg.Path(strings.ReplaceAll(v.Output, "{font}", base))
}
