// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/shimgen/shimgen/internal/driver"
	"github.com/shimgen/shimgen/internal/fswrite"
	"github.com/shimgen/shimgen/internal/install"
	"github.com/shimgen/shimgen/internal/issue"
	"github.com/shimgen/shimgen/pkg/types"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	catalogue   string
	dryRun      bool
	check       bool
	skipInstall bool
}

func newGenerateCommand(app *App) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate every catalogue package and update the override tables",
		Long: `Generate every catalogue package and update the override tables.

Files whose content is already correct are left untouched, so a second run
without catalogue changes writes nothing. After the top-level manifest is
written the configured install command runs in the repository root.

In the top-level package.json only "pnpm.overrides" and the workspace
"overrides" table are replaced. Other keys under "pnpm" (for example
"onlyBuiltDependencies") are kept as they are.

With --check nothing is written and the command exits with status 3 when
any generated file or the manifest is out of date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalogue, "catalogue", "", "catalogue file (default is the configured or built-in catalogue)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&opts.check, "check", false, "exit 3 when generated output is out of date (implies --dry-run)")
	cmd.Flags().BoolVar(&opts.skipInstall, "skip-install", false, "do not run the install command")

	return cmd
}

func runGenerate(ctx context.Context, app *App, opts generateOptions) error {
	cfg, logger, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}
	cat, err := app.loadCatalogue(cfg, opts.catalogue)
	if err != nil {
		return err
	}

	dryRun := opts.dryRun || opts.check
	var installer install.Installer
	if cfg.Install.Enabled && !opts.skipInstall && !dryRun {
		installer, err = app.NewInstaller(cfg.Install.Command, app.stdout, app.stderr)
		if err != nil {
			return issue.NewErrorContext().
				WithOperation("prepare install command").
				WithResource(cfg.Install.Command).
				WithIssue(issue.InstallFailedId).
				Wrap(err).
				BuildError()
		}
	}

	d, err := driver.New(driver.Options{
		Layout:       layout(cfg),
		RootDir:      cfg.Root.String(),
		ManifestPath: cfg.ManifestPath().String(),
		Concurrency:  cfg.Concurrency,
		Writer:       fswrite.New(app.Fs, fswrite.WithDryRun(dryRun)),
		Installer:    installer,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	report, err := d.Run(ctx, cat)
	if report != nil {
		printReport(app, report)
	}
	if err != nil {
		return err
	}

	if opts.check && report.Changed() {
		return &ExitError{
			Code: types.ExitOutOfDate,
			Err: issue.NewErrorContext().
				WithOperation("check generated packages").
				WithResource(cfg.Root.String()).
				WithIssue(issue.OutOfDateId).
				WithSuggestion("Run 'shimgen generate' and commit the result").
				Wrap(fmt.Errorf("%d file(s) out of date", report.Stats.Writes())).
				BuildError(),
		}
	}
	return nil
}

func printReport(app *App, report *driver.Report) {
	out := app.stdout
	verb := "wrote"
	if report.DryRun {
		verb = "would write"
	}

	for _, path := range report.ChangedFiles() {
		fmt.Fprintf(out, "  %s %s\n", WarningStyle.Render("~"), path)
	}

	summary := fmt.Sprintf("%d package(s), %d override(s): %s %d file(s), %d unchanged",
		len(report.Packages), len(report.Overrides), verb, report.Stats.Writes(), report.Stats.Unchanged)
	if report.Changed() {
		fmt.Fprintln(out, SuccessStyle.Render("✓")+" "+summary)
	} else {
		fmt.Fprintln(out, SuccessStyle.Render("✓")+" "+summary+SubtitleStyle.Render(" (up to date)"))
	}
	if report.InstallRan {
		fmt.Fprintln(out, SuccessStyle.Render("✓")+" install completed")
	}
}
