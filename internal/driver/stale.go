// SPDX-License-Identifier: MPL-2.0

package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/shimgen/shimgen/internal/synth"
	"github.com/shimgen/shimgen/pkg/catalogue"

	"github.com/spf13/afero"
)

// Stale lists directories under the packages directory that no catalogue
// entry accounts for. Manual packages and the helper package are never
// reported. Nothing is deleted.
func Stale(fsys afero.Fs, layout synth.Layout, cat *catalogue.Catalogue) ([]string, error) {
	entries, err := afero.ReadDir(fsys, layout.PackagesDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", layout.PackagesDir, err)
	}

	known := make(map[string]bool)
	for _, name := range cat.Names() {
		known[string(name)] = true
	}
	if helper, ok := strings.CutPrefix(layout.HelperPackage, layout.Namespace+"/"); ok {
		known[helper] = true
	}

	var stale []string
	for _, e := range entries {
		if e.IsDir() && !known[e.Name()] {
			stale = append(stale, e.Name())
		}
	}
	slices.Sort(stale)
	return stale, nil
}
