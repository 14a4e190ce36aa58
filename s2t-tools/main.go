package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/s2tfont/otfcc"
	"github.com/npillmayer/s2tfont/otfont"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 's2t.font'
func tracer() tracing.Trace {
	return tracing.Select("s2t.font")
}

func main() {
	initDisplay()
	setupTracing()

	commando.
		SetExecutableName("s2t-tools").
		SetVersion("v0.1.0").
		SetDescription("Build and check fonts which render Simplified Chinese as Traditional Chinese.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("build").
		SetDescription("Convert a font for every variant of a build configuration and write the results.").
		SetShortDescription("build conversion fonts").
		AddArgument("config", "YAML build configuration", "").
		AddArgument("font", "source font file (binary, or otfcc JSON dump with --json)", "").
		AddFlag("variant,v", "build only this variant", commando.String, "-").
		AddFlag("json,j", "font files are otfcc JSON dumps", commando.Bool, nil).
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Info").
		SetAction(runBuildCommand)

	commando.
		Register("preview").
		SetDescription("Interactively convert text through the feature of a converted font.").
		SetShortDescription("interactive conversion").
		AddArgument("font", "converted font file", "").
		AddFlag("feature,f", "GSUB feature to apply", commando.String, "liga_s2t").
		AddFlag("json,j", "font file is an otfcc JSON dump", commando.Bool, nil).
		AddFlag("index,i", "font index within a collection", commando.Int, 0).
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runPreviewCommand)

	commando.
		Register("convert").
		SetDescription("Convert text through the feature of a converted font and print the result.").
		SetShortDescription("convert text").
		AddArgument("font", "converted font file", "").
		AddArgument("text...", "text to convert", "").
		AddFlag("feature,f", "GSUB feature to apply", commando.String, "liga_s2t").
		AddFlag("json,j", "font file is an otfcc JSON dump", commando.Bool, nil).
		AddFlag("index,i", "font index within a collection", commando.Int, 0).
		AddFlag("glyphs,g", "print glyph names instead of text", commando.Bool, nil).
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runConvertCommand)

	commando.
		Register("inspect").
		SetDescription("Print a summary of a binary font and check which code points it covers.").
		SetShortDescription("font summary").
		AddArgument("font", "font file path or system font name", "").
		AddFlag("probe,p", "text whose code points are checked", commando.String, "国國台臺湾灣").
		AddFlag("index,i", "font index within a collection", commando.Int, 0).
		SetAction(runInspectCommand)

	commando.
		Register("view").
		SetDescription("Render text to a PNG image, optionally converting it first.").
		SetShortDescription("render text").
		AddArgument("font", "font file path or system font name", "").
		AddArgument("text...", "text to render", "").
		AddFlag("convert,c", "convert the text through the font's feature before rendering", commando.Bool, nil).
		AddFlag("feature,f", "GSUB feature to apply", commando.String, "liga_s2t").
		AddFlag("index,i", "font index within a collection", commando.Int, 0).
		AddFlag("output,o", "output PNG file", commando.String, "s2t-tools-view.png").
		AddFlag("ppem,p", "render scale in pixels-per-em", commando.Int, 64).
		AddFlag("width,W", "image width in pixels", commando.Int, 640).
		AddFlag("height,H", "image height in pixels", commando.Int, 120).
		SetAction(runViewCommand)

	commando.Parse(nil)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setupTracing() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.s2t.font":  "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func setTraceLevel(flag commando.FlagValue) {
	level, err := flag.GetString()
	if err != nil {
		fatalf("invalid --trace flag: %v", err)
	}
	switch level {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		fatalf("invalid trace level: %s", level)
	}
}

// codec selects the font codec: plain JSON dumps, or binary fonts through the
// otfcc tools.
func codec(json bool, index int) otfont.FontCodec {
	if json {
		return otfcc.JSONCodec{}
	}
	return otfcc.ExecCodec{TTCIndex: index}
}

func mustDecodeFont(path string, json bool, index int) *otfont.Font {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("cannot read font %s: %v", path, err)
	}
	font, err := codec(json, index).Decode(data)
	if err != nil {
		fatalf("cannot decode font %s: %v", path, err)
	}
	return font
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "s2t-tools: "+format+"\n", args...)
	os.Exit(1)
}
