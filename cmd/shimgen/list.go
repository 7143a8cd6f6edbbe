// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shimgen/shimgen/pkg/catalogue"

	"github.com/spf13/cobra"
)

// manualKind labels manual entries in `shimgen list`; they have no catalogue.Kind.
const manualKind = "manual"

type listRow struct {
	name   catalogue.PackageName
	kind   string
	helper bool
	engine catalogue.EngineRange
}

func newListCommand(app *App) *cobra.Command {
	var (
		cataloguePath string
		kind          string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogue entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := app.loadCatalogue(cfg, cataloguePath)
			if err != nil {
				return err
			}

			rows, err := listRows(cat, catalogue.EngineRange(cfg.BaselineEngine), kind)
			if err != nil {
				return err
			}
			for _, r := range rows {
				helper := ""
				if r.helper {
					helper = SubtitleStyle.Render(" +helper")
				}
				engine := ""
				if r.engine != "" {
					engine = " " + SubtitleStyle.Render(r.engine.String())
				}
				fmt.Fprintf(app.stdout, "%s %s%s%s\n", kindColumnStyle.Render(r.kind), NameStyle.Render(r.name.String()), engine, helper)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cataloguePath, "catalogue", "", "catalogue file (default is the configured or built-in catalogue)")
	cmd.Flags().StringVar(&kind, "kind", "", "only list entries of this kind (standard, single-file, manual)")

	return cmd
}

// listRows flattens cat into name-sorted rows, optionally filtered by kind.
func listRows(cat *catalogue.Catalogue, baseline catalogue.EngineRange, kind string) ([]listRow, error) {
	switch kind {
	case "", catalogue.KindStandard.String(), catalogue.KindSingleFile.String(), manualKind:
	default:
		return nil, fmt.Errorf("unknown kind %q (valid: %s, %s, %s)", kind, catalogue.KindStandard, catalogue.KindSingleFile, manualKind)
	}

	var rows []listRow
	for _, e := range cat.Entries() {
		rows = append(rows, listRow{
			name:   e.Name(),
			kind:   e.Kind.String(),
			helper: e.NeedsHelper(),
			engine: e.MinRuntime().Or(baseline),
		})
	}
	for _, name := range cat.Manual {
		rows = append(rows, listRow{name: name, kind: manualKind})
	}

	if kind != "" {
		rows = slices.DeleteFunc(rows, func(r listRow) bool { return r.kind != kind })
	}
	slices.SortFunc(rows, func(a, b listRow) int {
		return cmp.Compare(a.name, b.name)
	})
	return rows, nil
}
