package fontload

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func loadGoRegular(t *testing.T) *ScalableFont {
	f, err := ParseOpenTypeFont(goregular.TTF, 0)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestParseOpenTypeFont(t *testing.T) {
	f := loadGoRegular(t)
	if !strings.HasPrefix(f.Fontname, "Go") {
		t.Errorf("expected font name to start with Go, is %q", f.Fontname)
	}
	if _, err := ParseOpenTypeFont(goregular.TTF, 1); err == nil {
		t.Error("expected index error for plain font")
	}
	if _, err := ParseOpenTypeFont([]byte("no font"), 0); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadOpenTypeFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	found, err := Locate(path)
	if err != nil || found != path {
		t.Fatalf("expected existing path to be returned unchanged, got %q, %v", found, err)
	}
	f, err := LoadOpenTypeFont(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if f.SFNT.NumGlyphs() == 0 {
		t.Error("expected glyphs")
	}
	if _, err := Locate("surely-not-installed-font-4711.ttf"); err == nil {
		t.Error("expected unknown font to be reported")
	}
}

func TestInspect(t *testing.T) {
	s, err := Inspect(loadGoRegular(t), "Ab国")
	if err != nil {
		t.Fatal(err)
	}
	if s.UnitsPerEm != 2048 {
		t.Errorf("expected 2048 units per em, have %d", s.UnitsPerEm)
	}
	if s.Subfamily != "Regular" {
		t.Errorf("expected subfamily Regular, have %q", s.Subfamily)
	}
	if string(s.Mapped) != "Ab" || string(s.Missing) != "国" {
		t.Errorf("expected Ab mapped and 国 missing, have %q and %q", string(s.Mapped), string(s.Missing))
	}
}

func TestRenderText(t *testing.T) {
	f := loadGoRegular(t)
	opts := RenderOptions{Width: 200, Height: 80, PPEM: 48}
	img, err := RenderText(f, "Hi", opts)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 80 {
		t.Fatalf("unexpected image size %v", img.Bounds())
	}
	inked := 0
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < 80; y++ {
		for x := 0; x < 200; x++ {
			if img.RGBAAt(x, y) != white {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("expected some pixels to be drawn")
	}
	if _, err := RenderText(f, "国", opts); err == nil {
		t.Error("expected error for text without drawable glyphs")
	}
	if _, err := RenderText(f, "Hi", RenderOptions{}); err == nil {
		t.Error("expected error for empty canvas")
	}
	out := filepath.Join(t.TempDir(), "png", "hi.png")
	if err := WritePNG(img, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Error(err)
	}
}
