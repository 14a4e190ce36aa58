package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/s2tfont/internal/fontload"
	"github.com/npillmayer/s2tfont/otpreview"
	"github.com/thatisuday/commando"
)

func runInspectCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	path, err := fontload.Locate(strings.TrimSpace(args["font"].Value))
	if err != nil {
		fatalf("%v", err)
	}
	f, err := fontload.LoadOpenTypeFont(path, mustFlagInt(flags["index"], "index"))
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	s, err := fontload.Inspect(f, mustFlagString(flags["probe"], "probe"))
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Path: %s\n", path)
	fmt.Printf("Name: %s\n", s.Name)
	if s.Family != "" {
		fmt.Printf("Family: %s\n", s.Family)
	}
	if s.Subfamily != "" {
		fmt.Printf("Subfamily: %s\n", s.Subfamily)
	}
	if s.Version != "" {
		fmt.Printf("Version: %s\n", s.Version)
	}
	fmt.Printf("Glyphs: %d\n", s.NumGlyphs)
	fmt.Printf("Units per em: %d\n", s.UnitsPerEm)
	fmt.Printf("Mapped: %s\n", string(s.Mapped))
	fmt.Printf("Missing: %s\n", string(s.Missing))
}

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	path, err := fontload.Locate(strings.TrimSpace(args["font"].Value))
	if err != nil {
		fatalf("%v", err)
	}
	index := mustFlagInt(flags["index"], "index")
	f, err := fontload.LoadOpenTypeFont(path, index)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	text := args["text"].Value
	if mustFlagBool(flags["convert"], "convert") {
		font := mustDecodeFont(path, false, index)
		if text, err = otpreview.Apply(font, mustFlagString(flags["feature"], "feature"), text); err != nil {
			fatalf("%v", err)
		}
		tracer().Infof("converted text: %s", text)
	}
	opts := fontload.RenderOptions{
		Width:  mustFlagInt(flags["width"], "width"),
		Height: mustFlagInt(flags["height"], "height"),
		PPEM:   mustFlagInt(flags["ppem"], "ppem"),
	}
	img, err := fontload.RenderText(f, text, opts)
	if err != nil {
		fatalf("%v", err)
	}
	out := mustFlagString(flags["output"], "output")
	if err := fontload.WritePNG(img, out); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s\n", out)
}
