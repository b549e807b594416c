package main

import (
	"assetcat/cmd/assetcat/render"
	"assetcat/internal/catalog"
	"fmt"
)

type ListCmd struct {
	Names bool `short:"N" help:"Output entry names only (for scripting)"`
}

func (cmd *ListCmd) Run(g *Globals) error {
	entries, err := g.Cat.List()
	if err != nil {
		return err
	}

	if cmd.Names {
		for _, e := range entries {
			fmt.Fprintln(g.Out, e.Name)
		}
		return nil
	}

	fmt.Fprint(g.Out, g.Render.RenderEntryList(entryListView(entries)))
	return nil
}

func entryListView(entries []catalog.Entry) render.EntryListView {
	view := render.EntryListView{Items: make([]render.EntryListItem, 0, len(entries))}
	for _, e := range entries {
		latest, _ := e.LatestVersion()
		view.Items = append(view.Items, render.EntryListItem{
			Name:          e.Name,
			Type:          e.Type,
			LatestVersion: latest,
			VersionCount:  len(e.Versions),
			Timestamp:     e.LastRegistered(),
		})
	}
	return view
}
