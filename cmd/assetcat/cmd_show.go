package main

type ShowCmd struct {
	Entry   string `arg:"" help:"Entry name"`
	Version int    `short:"V" help:"Version to show (defaults to the latest)"`
	JSON    bool   `help:"Output as JSON"`
}

func (cmd *ShowCmd) Run(g *Globals) error {
	version := cmd.Version
	if version == 0 {
		latest, err := g.Cat.LatestVersion(cmd.Entry)
		if err != nil {
			return err
		}
		version = latest
	}

	cfg, err := g.Cat.ReadAssetConfiguration(cmd.Entry, version)
	if err != nil {
		return err
	}

	if cmd.JSON {
		return writeJSON(g.Out, cfg)
	}
	return writeYAML(g.Out, cfg)
}
