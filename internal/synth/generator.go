// SPDX-License-Identifier: MPL-2.0

package synth

import (
	"context"
	"fmt"

	"github.com/shimgen/shimgen/internal/fswrite"
	"github.com/shimgen/shimgen/internal/logging"
	"github.com/shimgen/shimgen/pkg/catalogue"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

type (
	// FileResult is the write outcome of one generated file.
	FileResult struct {
		Path    string
		Outcome fswrite.Outcome
	}

	// PackageResult reports what generating one entry did.
	PackageResult struct {
		Name  catalogue.PackageName
		Kind  catalogue.Kind
		Dir   string
		Files []FileResult
	}

	// Generator renders entries and persists them through a Writer.
	Generator struct {
		layout Layout
		writer *fswrite.Writer
		logger *log.Logger
	}
)

// NewGenerator validates l and returns a Generator writing through w.
// A nil logger discards output.
func NewGenerator(l Layout, w *fswrite.Writer, logger *log.Logger) (*Generator, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		layout: l,
		writer: w,
		logger: logging.OrDiscard(logger),
	}, nil
}

// Generate renders entry and writes its files concurrently. The first failed
// write cancels the remaining ones.
func (g *Generator) Generate(ctx context.Context, entry catalogue.Entry) (PackageResult, error) {
	pkg, err := Render(g.layout, entry)
	if err != nil {
		return PackageResult{}, err
	}

	files := make([]FileResult, len(pkg.Files))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, f := range pkg.Files {
		eg.Go(func() error {
			path := pkg.FilePath(f)
			outcome, err := g.writer.Write(egCtx, path, f.Content)
			if err != nil {
				return err
			}
			files[i] = FileResult{Path: path, Outcome: outcome}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return PackageResult{}, fmt.Errorf("failed to generate %s: %w", pkg.Name, err)
	}

	result := PackageResult{
		Name:  pkg.Name,
		Kind:  pkg.Kind,
		Dir:   pkg.Dir,
		Files: files,
	}
	for _, f := range files {
		g.logger.Debug("file", "path", f.Path, "outcome", f.Outcome)
	}
	g.logger.Info(fmt.Sprintf("[%s] created", pkg.Name), "written", result.Written())
	return result, nil
}

// Written returns how many files were (or would be) written.
func (r PackageResult) Written() int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome.Changed() {
			n++
		}
	}
	return n
}

// Changed reports whether any file of the package was (or would be) written.
func (r PackageResult) Changed() bool {
	return r.Written() > 0
}
