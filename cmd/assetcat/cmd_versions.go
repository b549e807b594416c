package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"
)

type VersionsCmd struct {
	Entry string `arg:"" help:"Entry name"`
}

func (cmd *VersionsCmd) Run(g *Globals) error {
	entry, err := g.Cat.Entry(cmd.Entry)
	if err != nil {
		return err
	}

	if len(entry.Versions) == 0 {
		fmt.Fprintf(g.Out, "%s (%s) has no versions.\n", entry.Name, entry.Type)
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tCREATED\tKEYS")
	fmt.Fprintln(w, "-------\t-------\t----")

	for _, v := range entry.Versions {
		keys := slices.Sorted(maps.Keys(v.AssetConfiguration))
		fmt.Fprintf(w, "%d\t%s\t%s\n",
			v.Number, v.CreatedAt().Format(time.RFC3339), strings.Join(keys, ", "))
	}

	return w.Flush()
}
