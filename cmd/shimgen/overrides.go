// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/shimgen/shimgen/pkg/manifest"

	"github.com/spf13/cobra"
)

func newOverridesCommand(app *App) *cobra.Command {
	var (
		cataloguePath string
		workspace     bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Print the override table generate would write",
		Long: `Print the override table generate would write.

The registry table maps every catalogue name, manual entries included, to
the latest published namespaced package. With --workspace the table that
points at the in-repo workspace packages is printed instead.`,
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

			target := manifest.RegistryTarget(cfg.Namespace)
			if workspace {
				target = manifest.WorkspaceTarget(cfg.Namespace)
			}
			table := manifest.BuildOverrides(cat.Names(), target)

			if asJSON {
				data, err := table.Object().Encode()
				if err != nil {
					return err
				}
				_, err = app.stdout.Write(data)
				return err
			}
			for _, o := range table {
				fmt.Fprintf(app.stdout, "%s %s\n", NameStyle.Render(o.Name.String()), o.Target)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cataloguePath, "catalogue", "", "catalogue file (default is the configured or built-in catalogue)")
	cmd.Flags().BoolVar(&workspace, "workspace", false, "print the workspace override table")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as a JSON object")

	return cmd
}
