// SPDX-License-Identifier: MPL-2.0

package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/shimgen/shimgen/internal/fswrite"
	"github.com/shimgen/shimgen/internal/install"
	"github.com/shimgen/shimgen/internal/issue"
	"github.com/shimgen/shimgen/internal/logging"
	"github.com/shimgen/shimgen/internal/synth"
	"github.com/shimgen/shimgen/pkg/catalogue"
	"github.com/shimgen/shimgen/pkg/manifest"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ErrNoWriter is returned by New when Options.Writer is nil.
var ErrNoWriter = errors.New("driver requires a file writer")

type (
	// Options configures a Driver.
	Options struct {
		// Layout holds the rendering knobs. Its Version is ignored and taken
		// from the top-level manifest on every run.
		Layout synth.Layout
		// RootDir is where the install command runs.
		RootDir string
		// ManifestPath is the top-level package.json.
		ManifestPath string
		// Concurrency bounds parallel package generation; 0 means unbounded.
		Concurrency int
		// Writer persists every file. In dry-run mode nothing is written and
		// the install step is skipped.
		Writer *fswrite.Writer
		// Installer runs after the manifest is written. Nil skips the step.
		Installer install.Installer
		Logger    *log.Logger
	}

	// Driver executes generation runs.
	Driver struct {
		opts   Options
		logger *log.Logger
	}
)

// New returns a Driver for opts.
func New(opts Options) (*Driver, error) {
	if opts.Writer == nil {
		return nil, ErrNoWriter
	}
	if opts.Installer == nil {
		opts.Installer = install.NopInstaller{}
	}
	return &Driver{opts: opts, logger: logging.OrDiscard(opts.Logger)}, nil
}

// Run performs one generation pass over cat.
func (d *Driver) Run(ctx context.Context, cat *catalogue.Catalogue) (*Report, error) {
	if err := cat.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate catalogue").
			WithResource(cat.Source).
			WithIssue(issue.CatalogueInvalidId).
			WithSuggestion("Fix the listed descriptors; nothing was written").
			Wrap(err).
			BuildError()
	}

	m, err := d.readManifest()
	if err != nil {
		return nil, err
	}

	layout := d.opts.Layout
	layout.Version = m.Version()
	gen, err := synth.NewGenerator(layout, d.opts.Writer, d.logger)
	if err != nil {
		return nil, fmt.Errorf("invalid generation layout: %w", err)
	}

	before := d.opts.Writer.Stats()
	report := &Report{
		ManifestPath: d.opts.ManifestPath,
		DryRun:       d.opts.Writer.DryRun(),
	}

	packages, err := d.generateAll(ctx, gen, cat.Entries())
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("generate packages").
			WithResource(layout.PackagesDir).
			WithIssue(issue.GenerationFailedId).
			WithSuggestion("The top-level manifest was not modified").
			Wrap(err).
			BuildError()
	}
	report.Packages = packages

	names := cat.Names()
	report.Overrides = manifest.BuildOverrides(names, manifest.RegistryTarget(layout.Namespace))
	report.WorkspaceOverrides = manifest.BuildOverrides(names, manifest.WorkspaceTarget(layout.Namespace))
	m.ApplyOverrides(report.Overrides, report.WorkspaceOverrides)

	data, err := m.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", d.opts.ManifestPath, err)
	}
	report.Manifest, err = d.opts.Writer.Write(ctx, d.opts.ManifestPath, data)
	if err != nil {
		id := issue.ManifestWriteFailedId
		if errors.Is(err, fs.ErrPermission) {
			id = issue.PermissionDeniedId
		}
		return nil, issue.NewErrorContext().
			WithOperation("write top-level manifest").
			WithResource(d.opts.ManifestPath).
			WithIssue(id).
			Wrap(err).
			BuildError()
	}
	d.logger.Debug("manifest", "path", d.opts.ManifestPath, "outcome", report.Manifest, "overrides", len(report.Overrides))

	report.Stats = d.opts.Writer.Stats().Sub(before)
	if report.DryRun {
		return report, nil
	}

	if _, skip := d.opts.Installer.(install.NopInstaller); !skip {
		d.logger.Info("installing dependencies", "dir", d.opts.RootDir)
		if err := d.opts.Installer.Install(ctx, d.opts.RootDir); err != nil {
			return report, issue.NewErrorContext().
				WithOperation("install dependencies").
				WithResource(d.opts.RootDir).
				WithIssue(issue.InstallFailedId).
				Wrap(err).
				BuildError()
		}
		report.InstallRan = true
	}
	return report, nil
}

// readManifest loads and checks the top-level manifest through the writer's filesystem.
func (d *Driver) readManifest() (*manifest.Manifest, error) {
	data, err := afero.ReadFile(d.opts.Writer.Fs(), d.opts.ManifestPath)
	if err != nil {
		id := issue.ManifestInvalidId
		if errors.Is(err, fs.ErrNotExist) {
			id = issue.ManifestNotFoundId
		}
		return nil, issue.NewErrorContext().
			WithOperation("read top-level manifest").
			WithResource(d.opts.ManifestPath).
			WithIssue(id).
			Wrap(err).
			BuildError()
	}

	m, err := manifest.Parse(data, d.opts.ManifestPath)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse top-level manifest").
			WithResource(d.opts.ManifestPath).
			WithIssue(issue.ManifestInvalidId).
			WithSuggestion(`The manifest needs string "name" and "version" fields`).
			Wrap(err).
			BuildError()
	}
	return m, nil
}

// generateAll fans out one task per entry. The first failure cancels the
// remaining tasks; results keep catalogue order.
func (d *Driver) generateAll(ctx context.Context, gen *synth.Generator, entries []catalogue.Entry) ([]synth.PackageResult, error) {
	results := make([]synth.PackageResult, len(entries))
	eg, egCtx := errgroup.WithContext(ctx)
	if d.opts.Concurrency > 0 {
		eg.SetLimit(d.opts.Concurrency)
	}
	for i, entry := range entries {
		eg.Go(func() error {
			res, err := gen.Generate(egCtx, entry)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
