package main

import (
	"assetcat/internal/catalog"
	"assetcat/internal/config"
	"fmt"
)

type InitCmd struct{}

func (cmd *InitCmd) Run(g *Globals) error {
	initer, ok := g.Cat.(catalog.Initializer)
	if !ok {
		return fmt.Errorf("catalog of type %T cannot be initialized", g.Cat)
	}
	if err := initer.Init(); err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}
	fmt.Fprintf(g.Out, "Initialized empty catalog at %s\n", config.ShortenPath(initer.Path()))
	return nil
}
