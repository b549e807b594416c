package main

import (
	"fmt"
)

type LatestCmd struct {
	Entry string `arg:"" help:"Entry name"`
}

func (cmd *LatestCmd) Run(g *Globals) error {
	latest, err := g.Cat.LatestVersion(cmd.Entry)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.Out, latest)
	return nil
}
