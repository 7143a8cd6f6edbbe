// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/shimgen/shimgen/internal/driver"

	"github.com/spf13/cobra"
)

func newStaleCommand(app *App) *cobra.Command {
	var cataloguePath string

	cmd := &cobra.Command{
		Use:   "stale",
		Short: "List package directories no catalogue entry accounts for",
		Long: `List package directories no catalogue entry accounts for.

Generation never deletes anything. Directories reported here were left
behind by entries that have since been removed from the catalogue.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := app.loadCatalogue(cfg, cataloguePath)
			if err != nil {
				return err
			}

			stale, err := driver.Stale(app.Fs, layout(cfg), cat)
			if err != nil {
				return err
			}
			if len(stale) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("no stale packages"))
				return nil
			}
			for _, name := range stale {
				fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("!"), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cataloguePath, "catalogue", "", "catalogue file (default is the configured or built-in catalogue)")

	return cmd
}
