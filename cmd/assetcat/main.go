package main

import (
	"assetcat/cmd/assetcat/render"
	"assetcat/internal/catalog"
	"assetcat/internal/config"
	"flag"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/golang/glog"
)

type CLI struct {
	Init     InitCmd     `cmd:"" help:"Create an empty catalog file"`
	Register RegisterCmd `cmd:"" aliases:"reg" help:"Register an entry or a new version of it"`
	Show     ShowCmd     `cmd:"" help:"Print the asset configuration of a version"`
	Latest   LatestCmd   `cmd:"" help:"Print the latest version number of an entry"`
	Versions VersionsCmd `cmd:"" help:"List the versions of an entry"`
	List     ListCmd     `cmd:"" aliases:"ls" help:"List entries in the catalog"`
	Validate ValidateCmd `cmd:"" help:"Check that an entry accepts the given type"`

	Location    string `short:"l" env:"ASSETCAT_LOCATION" help:"Directory holding the catalog file"`
	CatalogName string `name:"name" short:"n" env:"ASSETCAT_NAME" help:"Catalog file name inside the location"`
	Verbose     bool   `short:"v" help:"Log catalog activity to stderr"`
}

func (c *CLI) catalogOptions() []catalog.Option {
	if c.Verbose {
		_ = flag.Set("logtostderr", "true")
		return nil
	}
	return []catalog.Option{catalog.WithLogger(catalog.NopLogger())}
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	location := c.Location
	if location == "" {
		location = config.DefaultCatalogLocation()
	} else {
		expanded, err := config.ExpandPath(location)
		if err != nil {
			return fmt.Errorf("invalid location: %w", err)
		}
		location = expanded
	}
	name := c.CatalogName
	if name == "" {
		name = config.DefaultCatalogName
	}

	globals := &Globals{
		Cat:    catalog.NewYAMLCatalog(location, name, c.catalogOptions()...),
		Out:    os.Stdout,
		Render: render.NewLipglossRendererAuto(os.Stdout),
		Prompt: defaultPrompt,
	}
	ctx.Bind(globals)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name(config.AppName),
		kong.Description("Versioned asset catalog"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	glog.Flush()
	ctx.FatalIfErrorf(err)
}
