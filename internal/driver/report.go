// SPDX-License-Identifier: MPL-2.0

package driver

import (
	"github.com/shimgen/shimgen/internal/fswrite"
	"github.com/shimgen/shimgen/internal/synth"
	"github.com/shimgen/shimgen/pkg/catalogue"
	"github.com/shimgen/shimgen/pkg/manifest"
)

// Report summarizes a generation run.
type Report struct {
	// Packages holds one result per generated entry, in catalogue order.
	Packages []synth.PackageResult
	// Overrides is the registry override table written under "overrides".
	Overrides manifest.OverrideTable
	// WorkspaceOverrides is the table written under "pnpm.overrides".
	WorkspaceOverrides manifest.OverrideTable
	ManifestPath       string
	// Manifest is the write outcome of the top-level manifest.
	Manifest fswrite.Outcome
	// Stats counts file outcomes of this run, manifest included.
	Stats      fswrite.Stats
	InstallRan bool
	DryRun     bool
}

// Changed reports whether any file was (or, in dry-run mode, would be) written.
func (r *Report) Changed() bool {
	return r.Stats.Writes() > 0
}

// ChangedPackages lists the packages with at least one written file.
func (r *Report) ChangedPackages() []catalogue.PackageName {
	var names []catalogue.PackageName
	for _, p := range r.Packages {
		if p.Changed() {
			names = append(names, p.Name)
		}
	}
	return names
}

// ChangedFiles lists every written file path, manifest last.
func (r *Report) ChangedFiles() []string {
	var paths []string
	for _, p := range r.Packages {
		for _, f := range p.Files {
			if f.Outcome.Changed() {
				paths = append(paths, f.Path)
			}
		}
	}
	if r.Manifest.Changed() {
		paths = append(paths, r.ManifestPath)
	}
	return paths
}
