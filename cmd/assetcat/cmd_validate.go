package main

import (
	"assetcat/internal/catalog"
	"fmt"
)

type ValidateCmd struct {
	Entry string `arg:"" help:"Entry name"`
	Type  string `arg:"" help:"Asset type to check"`
}

func (cmd *ValidateCmd) Run(g *Globals) error {
	if err := checkEntryType(g.Cat, cmd.Entry, cmd.Type); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "OK: %s accepts type %s\n", cmd.Entry, catalog.NormalizeType(cmd.Type))
	return nil
}

func checkEntryType(cat catalog.Catalog, entry, assetType string) error {
	ok, err := cat.ValidateEntryType(entry, assetType)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	existing, err := cat.Entry(entry)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: %s is a %s, not a %s",
		catalog.ErrTypeMismatch, entry, existing.Type, catalog.NormalizeType(assetType))
}
