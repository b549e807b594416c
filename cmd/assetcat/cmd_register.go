package main

import (
	"assetcat/internal/catalog"
	"assetcat/internal/ui"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"
)

type RegisterCmd struct {
	Entry       string            `arg:"" optional:"" help:"Entry name"`
	Type        string            `short:"t" help:"Asset type (required for new entries)"`
	Version     int               `short:"V" help:"Version number (defaults to the next free one)"`
	Set         map[string]string `short:"s" help:"Configuration value as key=value (repeatable)"`
	ConfigFile  string            `name:"config-file" short:"f" type:"existingfile" help:"YAML file holding the asset configuration"`
	Interactive bool              `short:"i" help:"Fill in the registration with a wizard"`
}

func (cmd *RegisterCmd) Run(g *Globals) error {
	var inline string
	if cmd.Interactive || cmd.Entry == "" {
		in := ui.RegisterInput{Entry: cmd.Entry, Type: cmd.Type}
		if cmd.Version > 0 {
			in.Version = strconv.Itoa(cmd.Version)
		}
		if err := g.Prompt(&in); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if err := cmd.applyInput(in); err != nil {
			return err
		}
		inline = in.Configuration
	}

	cfg, err := cmd.configuration(inline)
	if err != nil {
		return err
	}

	if cmd.Type != "" {
		if err := checkEntryType(g.Cat, cmd.Entry, cmd.Type); err != nil {
			return err
		}
	}

	opts := catalog.RegisterOptions{
		Type:               cmd.Type,
		VersionNumber:      cmd.Version,
		AssetConfiguration: cfg,
	}
	if err := g.Cat.Register(cmd.Entry, opts); err != nil {
		return fmt.Errorf("failed to register %s: %w", cmd.Entry, err)
	}
	if err := g.Cat.Save(); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	version := cmd.Version
	if version == 0 {
		if version, err = g.Cat.LatestVersion(cmd.Entry); err != nil {
			return err
		}
	}

	if cmd.Interactive {
		fmt.Fprint(g.Out, registerSummary(cmd, version, cfg))
		checks := []string{fmt.Sprintf("%d configuration keys", len(cfg))}
		fmt.Fprint(g.Out, ui.RenderSuccess(cmd.Entry, version, checks))
		return nil
	}
	fmt.Fprintf(g.Out, "Registered: %s v%d\n", cmd.Entry, version)
	return nil
}

func (cmd *RegisterCmd) applyInput(in ui.RegisterInput) error {
	cmd.Entry = strings.TrimSpace(in.Entry)
	cmd.Type = strings.TrimSpace(in.Type)
	cmd.Version = 0
	if v := strings.TrimSpace(in.Version); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %q", catalog.ErrInvalidVersion, v)
		}
		cmd.Version = n
	}
	return nil
}

// configuration merges the config file, then wizard text, then --set values.
// Later sources override earlier ones key by key.
func (cmd *RegisterCmd) configuration(inline string) (map[string]any, error) {
	cfg := make(map[string]any)

	if cmd.ConfigFile != "" {
		data, err := os.ReadFile(cmd.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := mergeYAML(cfg, data); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", cmd.ConfigFile, err)
		}
	}

	if strings.TrimSpace(inline) != "" {
		if err := mergeYAML(cfg, []byte(inline)); err != nil {
			return nil, fmt.Errorf("invalid asset configuration: %w", err)
		}
	}

	for key, raw := range cmd.Set {
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		cfg[key] = v
	}

	return cfg, nil
}

func mergeYAML(dst map[string]any, data []byte) error {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return err
	}
	for k, v := range m {
		dst[k] = v
	}
	return nil
}

func registerSummary(cmd *RegisterCmd, version int, cfg map[string]any) string {
	fields := []ui.Field{
		{Label: "Entry", Value: cmd.Entry},
		{Label: "Type", Value: cmd.Type, Optional: true},
		{Label: "Version", Value: strconv.Itoa(version)},
		{Label: "Configuration", Value: strings.Join(slices.Sorted(maps.Keys(cfg)), ", "), Optional: true},
	}
	return ui.RenderWizard("Register asset", fields, -1)
}
