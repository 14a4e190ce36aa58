package assemble

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/npillmayer/s2tfont/otfont"
)

// Output is an encoded variant font.
type Output struct {
	Path   string
	Data   []byte
	Report *Report
}

// Build converts a decoded font for the given variants, all variants of the
// configuration if none are named. Every variant works on its own copy of
// base, which stays untouched.
func (a *Assembler) Build(codec otfont.FontCodec, base *otfont.Font, input string, variants ...string) ([]Output, error) {
	selected, err := a.selectVariants(variants)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	outputs := make([]Output, 0, len(selected))
	for _, v := range selected {
		font := base.Clone()
		rep, err := a.RunVariant(font, v)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		if err := ApplyMetadata(font, a.Config.Metadata, a.Names, v.Names, now()); err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		data, err := codec.Encode(font)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		outputs = append(outputs, Output{Path: a.Config.OutputPath(v, input), Data: data, Report: rep})
	}
	return outputs, nil
}

// BuildFile decodes a font file, converts it for the given variants and
// writes the results. Outputs are staged in temporary files next to their
// destination and renamed into place once every variant has been converted
// and staged; on a conversion or staging error no output file is touched.
func (a *Assembler) BuildFile(codec otfont.FontCodec, input string, variants ...string) ([]Output, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	base, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", input, err)
	}
	tracer().Infof("decoded %s: %d glyphs, %d code points", input, base.NumGlyphs(), base.Cmap.Len())
	outputs, err := a.Build(codec, base, input, variants...)
	if err != nil {
		return nil, err
	}
	staged := make([]string, 0, len(outputs))
	discard := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}
	for _, out := range outputs {
		tmp, err := stage(out)
		if err != nil {
			discard()
			return nil, err
		}
		staged = append(staged, tmp)
	}
	for i, out := range outputs {
		if err := os.Rename(staged[i], out.Path); err != nil {
			discard()
			return nil, err
		}
		tracer().Infof("wrote %s", out.Path)
	}
	return outputs, nil
}

// stage writes an output to a temporary file in its destination directory.
func stage(out Output) (string, error) {
	dir := filepath.Dir(out.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(out.Path)+".*")
	if err != nil {
		return "", err
	}
	_, err = f.Write(out.Data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(f.Name(), 0o644)
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (a *Assembler) selectVariants(names []string) ([]Variant, error) {
	if len(names) == 0 {
		return a.Config.Variants, nil
	}
	selected := make([]Variant, 0, len(names))
	for _, name := range names {
		v, ok := a.Config.Variant(name)
		if !ok {
			return nil, fmt.Errorf("%w: no variant %q", ErrConfig, name)
		}
		selected = append(selected, v)
	}
	return selected, nil
}
