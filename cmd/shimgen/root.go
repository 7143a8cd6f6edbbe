// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shimgen/shimgen/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shimgen",
		Short: "Generate shim packages and dependency overrides",
		Long: TitleStyle.Render("shimgen") + SubtitleStyle.Render(" - Generate shim packages and dependency overrides") + `

shimgen reads a catalogue of replacement implementations and writes one
package per entry under the packages directory. It then points the
top-level manifest's override tables at the generated packages and runs
the install command.

` + SubtitleStyle.Render("Examples:") + `
  shimgen generate              Generate packages and run the install
  shimgen generate --check      Exit 3 if anything would change
  shimgen list                  List catalogue entries
  shimgen overrides             Print the registry override table
  shimgen config show           Show current configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&app.flags.root, "root", ".", "repository root holding the top-level manifest")
	rootCmd.PersistentFlags().StringVar(&app.flags.configFile, "config", "", "config file (default is <root>/"+config.ConfigFileName+"."+config.ConfigFileExt+")")
	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newGenerateCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newOverridesCommand(app))
	rootCmd.AddCommand(newStaleCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newIssuesCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		os.Exit(int(exitCode(err)))
	}
}

// handleError renders command errors, including the issue help page of
// ActionableErrors, in place of fang's default error block.
func (a *App) handleError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	renderServiceError(w, asServiceError(err, a.flags.verbose), a.colorScheme.GlamourStyle())
}
