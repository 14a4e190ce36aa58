package main

import (
	"fmt"

	"github.com/npillmayer/s2tfont/assemble"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runBuildCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setTraceLevel(flags["trace"])
	cfg, err := assemble.LoadConfig(args["config"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	a, err := assemble.New(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	var variants []string
	if v := mustFlagString(flags["variant"], "variant"); v != "-" && v != "" {
		variants = append(variants, v)
	}
	c := codec(mustFlagBool(flags["json"], "json"), cfg.TTCIndex)
	outputs, err := a.BuildFile(c, args["font"].Value, variants...)
	if err != nil {
		fatalf("build failed: %v", err)
	}
	for _, out := range outputs {
		pterm.Info.Printf("%s → %s\n", out.Report.Variant, out.Path)
		printReport(out.Report)
	}
}

func printReport(rep *assemble.Report) {
	data := [][]string{
		{"Stage", "Result"},
		{"code points", fmt.Sprintf("font %d, retained %d, auxiliary %d, final %d",
			rep.Codepoints.Font.Len(), rep.Codepoints.Retained.Len(),
			rep.Codepoints.Auxiliary.Len(), rep.Codepoints.Final.Len())},
		{"dictionaries", fmt.Sprintf("%d lines, %d accepted, %d rejected, %d malformed",
			rep.Dictionary.Lines, rep.Dictionary.Accepted, rep.Dictionary.Rejected, rep.Dictionary.Malformed)},
		{"tables", fmt.Sprintf("%d characters, %d words", rep.Chars, rep.Words)},
		{"pruning", fmt.Sprintf("%d code points dropped, %d glyphs removed in %d passes",
			rep.Prune.DroppedCodepoints, len(rep.Prune.Removed), rep.Prune.Passes)},
		{"synthesis", fmt.Sprintf("%d placeholders, %d character rules, %d identities skipped, %d glyph collisions",
			rep.Synth.Placeholders, rep.Synth.CharRules, rep.Synth.IdentitySkipped, rep.Synth.Collisions)},
		{"glyphs", fmt.Sprintf("%d", rep.Glyphs)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
