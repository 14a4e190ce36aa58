package fontload

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RenderOptions control text rendering.
type RenderOptions struct {
	Width, Height int
	PPEM          int
}

// DefaultRenderOptions render a short line at a readable size.
var DefaultRenderOptions = RenderOptions{Width: 640, Height: 120, PPEM: 64}

type glyphPath struct {
	segs sfnt.Segments
	dx   float32
}

// RenderText draws text in black on white, one glyph per code point through
// the font's character map, horizontally centered. No layout features are
// applied.
func RenderText(f *ScalableFont, text string, opts RenderOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.PPEM <= 0 {
		return nil, fmt.Errorf("invalid render options %+v", opts)
	}
	var (
		buf   sfnt.Buffer
		paths []glyphPath
		penX  float32
	)
	ppem := fixed.I(opts.PPEM)
	for _, r := range text {
		gid, err := f.SFNT.GlyphIndex(&buf, r)
		if err != nil || gid == 0 {
			continue
		}
		segs, err := f.SFNT.LoadGlyph(&buf, gid, ppem, nil)
		if err != nil {
			continue
		}
		// segments are only valid until the buffer is re-used
		paths = append(paths, glyphPath{segs: append(sfnt.Segments(nil), segs...), dx: penX})
		if adv, err := f.SFNT.GlyphAdvance(&buf, gid, ppem, font.HintingNone); err == nil {
			penX += float32(adv) / 64
		}
	}
	if len(paths) == 0 {
		return nil, errors.New("no drawable glyph paths found")
	}
	metrics, err := f.SFNT.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}
	shiftX := (float32(opts.Width) - penX) / 2
	baseline := (float32(opts.Height) + float32(metrics.Ascent-metrics.Descent)/64) / 2

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	rast := vector.NewRasterizer(opts.Width, opts.Height)
	rast.DrawOp = draw.Over
	pt := func(p glyphPath, a fixed.Point26_6) (float32, float32) {
		return shiftX + p.dx + float32(a.X)/64, baseline + float32(a.Y)/64
	}
	for _, p := range paths {
		for _, seg := range p.segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				rast.MoveTo(pt(p, seg.Args[0]))
			case sfnt.SegmentOpLineTo:
				rast.LineTo(pt(p, seg.Args[0]))
			case sfnt.SegmentOpQuadTo:
				x1, y1 := pt(p, seg.Args[0])
				x2, y2 := pt(p, seg.Args[1])
				rast.QuadTo(x1, y1, x2, y2)
			case sfnt.SegmentOpCubeTo:
				x1, y1 := pt(p, seg.Args[0])
				x2, y2 := pt(p, seg.Args[1])
				x3, y3 := pt(p, seg.Args[2])
				rast.CubeTo(x1, y1, x2, y2, x3, y3)
			}
		}
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})
	return img, nil
}

// WritePNG encodes an image to a file, creating directories as needed.
func WritePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}
