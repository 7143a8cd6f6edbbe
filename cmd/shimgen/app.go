// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/shimgen/shimgen/internal/config"
	"github.com/shimgen/shimgen/internal/install"
	"github.com/shimgen/shimgen/internal/issue"
	"github.com/shimgen/shimgen/internal/logging"
	"github.com/shimgen/shimgen/internal/synth"
	"github.com/shimgen/shimgen/pkg/catalogue"
	"github.com/shimgen/shimgen/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference.
	App struct {
		Config       ConfigProvider
		Fs           afero.Fs
		NewInstaller InstallerFactory
		stdout       io.Writer
		stderr       io.Writer
		flags        globalFlags
		// colorScheme is taken from the last loaded configuration and used
		// when rendering issue help.
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config       ConfigProvider
		Fs           afero.Fs
		NewInstaller InstallerFactory
		Stdout       io.Writer
		Stderr       io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// InstallerFactory builds the installer for a configured command line.
	InstallerFactory func(command string, stdout, stderr io.Writer) (install.Installer, error)

	globalFlags struct {
		root       string
		configFile string
		verbose    bool
	}
)

// NewApp creates the CLI composition root.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.NewInstaller == nil {
		deps.NewInstaller = newShellInstaller
	}

	return &App{
		Config:       deps.Config,
		Fs:           deps.Fs,
		NewInstaller: deps.NewInstaller,
		stdout:       deps.Stdout,
		stderr:       deps.Stderr,
	}, nil
}

func newShellInstaller(command string, stdout, stderr io.Writer) (install.Installer, error) {
	return install.NewShellInstaller(command, install.WithOutput(stdout, stderr))
}

// loadOptions maps the global flags onto config load options.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(a.flags.configFile),
		BaseDir:        types.FilesystemPath(a.flags.root),
	}
}

// loadConfig loads configuration and installs the process logger.
func (a *App) loadConfig(ctx context.Context) (*config.Config, *log.Logger, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, nil, err
	}
	a.colorScheme = cfg.UI.ColorScheme
	a.flags.verbose = a.verbose(cfg)
	logger := logging.New(a.stderr, a.flags.verbose)
	logging.Install(logger)
	return cfg, logger, nil
}

func (a *App) verbose(cfg *config.Config) bool {
	return a.flags.verbose || (cfg != nil && cfg.UI.Verbose)
}

// loadCatalogue reads the catalogue named by override, the configuration, or
// the built-in one, in that order.
func (a *App) loadCatalogue(cfg *config.Config, override string) (*catalogue.Catalogue, error) {
	path := cfg.CataloguePath().String()
	if override != "" {
		path = override
	}
	if path == "" {
		return catalogue.Default()
	}

	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		id := issue.CatalogueInvalidId
		if errors.Is(err, fs.ErrNotExist) {
			id = issue.CatalogueNotFoundId
		}
		return nil, issue.NewErrorContext().
			WithOperation("read catalogue").
			WithResource(path).
			WithIssue(id).
			Wrap(err).
			BuildError()
	}

	cat, err := catalogue.Parse(data, path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse catalogue").
			WithResource(path).
			WithIssue(issue.CatalogueInvalidId).
			Wrap(err).
			BuildError()
	}
	return cat, nil
}

// layout derives the rendering layout from cfg. Version is left for the
// driver to fill from the top-level manifest.
func layout(cfg *config.Config) synth.Layout {
	return synth.Layout{
		PackagesDir:   cfg.PackagesPath().String(),
		Namespace:     cfg.Namespace,
		HelperPackage: cfg.Helper.Package,
		HelperSpec:    cfg.Helper.Spec,
		License:       cfg.License,
		Runtime:       cfg.Runtime,
		Baseline:      catalogue.EngineRange(cfg.BaselineEngine),
	}
}
