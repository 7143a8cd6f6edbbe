// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/shimgen/shimgen/internal/issue"

	"github.com/spf13/cobra"
)

func newIssuesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "issues [id]",
		Short: "Show troubleshooting help for known problems",
		Long: `Show troubleshooting help for known problems.

Without an argument every entry is listed. Errors that match an entry print
its help automatically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style := app.colorScheme.GlamourStyle()
			if len(args) == 0 {
				for _, entry := range issue.Values() {
					if err := printIssue(app, entry, style); err != nil {
						return err
					}
				}
				return nil
			}

			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid issue id %q: %w", args[0], err)
			}
			entry := issue.Get(issue.Id(n))
			if entry == nil {
				return fmt.Errorf("unknown issue id %d", n)
			}
			return printIssue(app, entry, style)
		},
	}
}

func printIssue(app *App, entry *issue.Issue, style string) error {
	rendered, err := entry.Render(style)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s\n%s", TitleStyle.Render(fmt.Sprintf("Issue %d", entry.Id())), rendered)
	return nil
}
