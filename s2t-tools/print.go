package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/s2tfont/otfont"
	"github.com/pterm/pterm"
)

func printFeatures(table *otfont.LayoutTable) {
	if table == nil {
		pterm.Error.Println("GSUB table is nil")
		return
	}
	names := make([]string, 0, len(table.Features))
	for name := range table.Features {
		names = append(names, name)
	}
	slices.Sort(names)
	data := [][]string{
		{"Feature", "Lookups", "Language systems"},
	}
	for _, name := range names {
		var langs []string
		for tag, ls := range table.Languages {
			if slices.Contains(ls.Features, name) {
				langs = append(langs, tag)
			}
		}
		slices.Sort(langs)
		data = append(data, []string{
			name,
			strings.Join(table.Features[name], ","),
			strings.Join(langs, ","),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLookupList(table *otfont.LayoutTable) {
	if table == nil {
		pterm.Error.Println("GSUB table is nil")
		return
	}
	lookups := table.LookupsInOrder()
	pterm.Printf("GSUB has %d lookups\n", len(lookups))
	if len(lookups) == 0 {
		return
	}
	data := [][]string{
		{"Index", "Name", "Type", "Subtables", "Rules"},
	}
	for i, nl := range lookups {
		subtables, rules := countRules(nl.Lookup.Rules)
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			nl.Name,
			nl.Lookup.TypeTag(),
			fmt.Sprintf("%d", subtables),
			fmt.Sprintf("%d", rules),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func countRules(rules otfont.Rules) (subtables, n int) {
	switch r := rules.(type) {
	case *otfont.SingleSubst:
		for _, st := range r.Subtables {
			n += len(st)
		}
		return len(r.Subtables), n
	case *otfont.MultipleSubst:
		for _, st := range r.Subtables {
			n += len(st)
		}
		return len(r.Subtables), n
	case *otfont.AlternateSubst:
		for _, st := range r.Subtables {
			n += len(st)
		}
		return len(r.Subtables), n
	case *otfont.LigatureSubst:
		for _, st := range r.Subtables {
			n += len(st.Substitutions)
		}
		return len(r.Subtables), n
	}
	return 0, 0
}
