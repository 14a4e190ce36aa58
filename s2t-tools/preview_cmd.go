package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/s2tfont/otfont"
	"github.com/npillmayer/s2tfont/otpreview"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runConvertCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setTraceLevel(flags["trace"])
	font := mustDecodeFont(args["font"].Value, mustFlagBool(flags["json"], "json"),
		mustFlagInt(flags["index"], "index"))
	feature := mustFlagString(flags["feature"], "feature")
	run := otpreview.Glyphs(font, args["text"].Value)
	run, err := otpreview.ApplyGlyphs(font, feature, run)
	if err != nil {
		fatalf("%v", err)
	}
	if mustFlagBool(flags["glyphs"], "glyphs") {
		fmt.Println(formatRun(run))
		return
	}
	fmt.Println(otpreview.Text(font, run))
}

func runPreviewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setTraceLevel(flags["trace"])
	font := mustDecodeFont(args["font"].Value, mustFlagBool(flags["json"], "json"),
		mustFlagInt(flags["index"], "index"))
	pterm.Info.Println("Welcome to the conversion preview") // colored welcome message
	repl, err := readline.New("s2t > ")
	if err != nil {
		fatalf("%v", err)
	}
	defer repl.Close()
	intp := &Intp{font: font, feature: mustFlagString(flags["feature"], "feature"), repl: repl}
	if err := intp.checkFeature(); err != nil {
		fatalf("%v", err)
	}
	pterm.Info.Println("Type text to convert, :help for commands, quit with <ctrl>D")
	intp.REPL()
}

// Intp is our interpreter object
type Intp struct {
	font    *otfont.Font
	feature string
	glyphs  bool // print glyph runs
	repl    *readline.Instance
}

func (intp *Intp) String() string {
	mode := "text"
	if intp.glyphs {
		mode = "glyphs"
	}
	return fmt.Sprintf("( feature=%s mode=%s )", intp.feature, mode)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			intp.convert(line)
			continue
		}
		quit, err := intp.execute(line[1:])
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) convert(text string) {
	run, err := otpreview.ApplyGlyphs(intp.font, intp.feature, otpreview.Glyphs(intp.font, text))
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	pterm.Println(otpreview.Text(intp.font, run))
	if intp.glyphs {
		pterm.Println(formatRun(run))
	}
}

const (
	QUIT int = iota
	HELP
	FEATURE
	FEATURES
	LOOKUPS
	GLYPHS
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"feature":  FEATURE,
	"features": FEATURES,
	"lookups":  LOOKUPS,
	"glyphs":   GLYPHS,
}

var errNoFeature = errors.New("no such GSUB feature")

func (intp *Intp) execute(line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(line, " ")
	code, ok := opMap[strings.ToLower(cmd)]
	if !ok {
		code = HELP
	}
	arg = strings.TrimSpace(arg)
	tracer().Debugf("command %s %q", cmd, arg)
	switch code {
	case QUIT:
		return true, nil
	case FEATURE:
		if arg == "" {
			return false, fmt.Errorf("usage: :feature <name>")
		}
		old := intp.feature
		intp.feature = arg
		if err := intp.checkFeature(); err != nil {
			intp.feature = old
			return false, err
		}
	case FEATURES:
		printFeatures(intp.font.GSUB)
	case LOOKUPS:
		printLookupList(intp.font.GSUB)
	case GLYPHS:
		intp.glyphs = !intp.glyphs
	default:
		help()
	}
	return false, nil
}

func (intp *Intp) checkFeature() error {
	if intp.font.GSUB == nil {
		return fmt.Errorf("%w: font has no GSUB table", errNoFeature)
	}
	if _, ok := intp.font.GSUB.Features[intp.feature]; !ok {
		return fmt.Errorf("%w: %s", errNoFeature, intp.feature)
	}
	return nil
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	<text>            convert text through the current feature
	:feature <name>   switch to another GSUB feature
	:features         list GSUB features and their lookups
	:lookups          list GSUB lookups in lookup order
	:glyphs           toggle printing of glyph runs
	:quit             leave the preview
	`)
}

func formatRun(run []otpreview.Slot) string {
	parts := make([]string, len(run))
	for i, s := range run {
		if s.Glyph == "" {
			parts[i] = fmt.Sprintf("<%U>", s.Rune)
		} else {
			parts[i] = s.Glyph
		}
	}
	return strings.Join(parts, "|")
}
