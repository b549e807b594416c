package main

import (
	"assetcat/cmd/assetcat/render"
	"assetcat/internal/catalog"
	"assetcat/internal/ui"
	"io"
)

type Globals struct {
	Cat    catalog.Catalog
	Out    io.Writer
	Render render.Renderer
	Prompt func(in *ui.RegisterInput) error
}

func defaultPrompt(in *ui.RegisterInput) error {
	return ui.RegisterForm(in).Run()
}
