// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/shimgen/shimgen/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `shimgen config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect shimgen configuration",
		Long: `Inspect shimgen configuration.

Configuration is read from <root>/shimgen.cue when present, then from
SHIMGEN_* environment variables (e.g. SHIMGEN_INSTALL_ENABLED=false).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadWithPath(cmd.Context(), app.loadOptions())
			if err != nil {
				return err
			}
			if loaded.Path == "" {
				fmt.Fprintf(app.stdout, "%s (not present, using defaults)\n", config.DefaultFilePath(loaded.Config.Root.String()))
				return nil
			}
			fmt.Fprintln(app.stdout, loaded.Path)
			return nil
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return err
			}
			switch format {
			case "cue":
				fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			case "toml":
				out, err := config.GenerateTOML(cfg)
				if err != nil {
					return err
				}
				_, err = app.stdout.Write(out)
				return err
			default:
				return fmt.Errorf("unknown format %q (valid: cue, toml)", format)
			}
			return nil
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", "cue", "output format (cue, toml)")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	loaded, err := config.LoadWithPath(ctx, app.loadOptions())
	if err != nil {
		return err
	}
	cfg := loaded.Config
	out := app.stdout

	keyStyle := NameStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)
	if loaded.Path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), loaded.Path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	catalogue := cfg.Catalogue.String()
	if catalogue == "" {
		catalogue = "(built-in)"
	}
	for _, kv := range []struct{ key, value string }{
		{"root", cfg.Root.String()},
		{"packages_dir", cfg.PackagesPath().String()},
		{"manifest", cfg.ManifestPath().String()},
		{"catalogue", catalogue},
		{"namespace", cfg.Namespace},
		{"license", cfg.License},
		{"runtime", cfg.Runtime},
		{"baseline_engine", cfg.BaselineEngine},
		{"concurrency", fmt.Sprintf("%d", cfg.Concurrency)},
	} {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render(kv.key), valueStyle.Render(kv.value))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("helper"))
	fmt.Fprintf(out, "  package: %s\n", valueStyle.Render(cfg.Helper.Package))
	fmt.Fprintf(out, "  spec: %s\n", valueStyle.Render(cfg.Helper.Spec))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("install"))
	fmt.Fprintf(out, "  enabled: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Install.Enabled)))
	fmt.Fprintf(out, "  command: %s\n", valueStyle.Render(cfg.Install.Command))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))

	return nil
}
