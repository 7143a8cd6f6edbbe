// SPDX-License-Identifier: MPL-2.0

package synth

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shimgen/shimgen/pkg/catalogue"
)

const (
	// DefaultNamespace scopes every generated package name.
	DefaultNamespace = "@nolyfill"
	// DefaultHelperPackage provides the uncurryThis unbinding helper.
	DefaultHelperPackage = "@nolyfill/shared"
	// DefaultHelperSpec is the dependency specifier used for the helper.
	DefaultHelperSpec = "workspace:*"
	// DefaultLicense is written into every package manifest.
	DefaultLicense = "MIT"
	// DefaultRuntime is the engines key of every package manifest.
	DefaultRuntime = "node"
	// DefaultBaseline applies when a descriptor declares no engine range.
	DefaultBaseline catalogue.EngineRange = ">=12.4.0"
	// DefaultPackagesDir holds one directory per generated package.
	DefaultPackagesDir = "packages"
)

// ErrInvalidLayout is the sentinel error wrapped by InvalidLayoutError.
var ErrInvalidLayout = errors.New("invalid layout")

type (
	// Layout carries the knobs shared by every rendered package.
	Layout struct {
		// PackagesDir is the directory that receives one subdirectory per package.
		PackagesDir string
		// Namespace prefixes package names, e.g. "@nolyfill" gives "@nolyfill/has".
		Namespace string
		// HelperPackage is required by non-static index modules.
		HelperPackage string
		// HelperSpec is the dependency specifier for HelperPackage.
		HelperSpec string
		License    string
		Runtime    string
		Baseline   catalogue.EngineRange
		// Version is copied from the top-level manifest into every package.
		Version string
	}

	// InvalidLayoutError lists the Layout fields that are unusable.
	InvalidLayoutError struct {
		Fields []string
	}
)

// DefaultLayout returns the layout matching the published shim packages.
// Version is left empty; callers take it from the top-level manifest.
func DefaultLayout() Layout {
	return Layout{
		PackagesDir:   DefaultPackagesDir,
		Namespace:     DefaultNamespace,
		HelperPackage: DefaultHelperPackage,
		HelperSpec:    DefaultHelperSpec,
		License:       DefaultLicense,
		Runtime:       DefaultRuntime,
		Baseline:      DefaultBaseline,
	}
}

// Error implements the error interface.
func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid layout: missing or invalid %s", strings.Join(e.Fields, ", "))
}

// Unwrap returns ErrInvalidLayout for errors.Is() compatibility.
func (e *InvalidLayoutError) Unwrap() error { return ErrInvalidLayout }

// Validate reports every empty or malformed field.
func (l Layout) Validate() error {
	var fields []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			fields = append(fields, name)
		}
	}
	check("packages dir", l.PackagesDir)
	check("namespace", l.Namespace)
	check("helper package", l.HelperPackage)
	check("helper spec", l.HelperSpec)
	check("license", l.License)
	check("runtime", l.Runtime)
	check("version", l.Version)
	if l.Baseline == "" || l.Baseline.Validate() != nil {
		fields = append(fields, "baseline engine range")
	}

	if len(fields) > 0 {
		return &InvalidLayoutError{Fields: fields}
	}
	return nil
}

// ScopedName returns the namespaced package name, e.g. "@nolyfill/has".
func (l Layout) ScopedName(name catalogue.PackageName) string {
	return l.Namespace + "/" + string(name)
}

// PackageDir returns the directory a package is generated into.
func (l Layout) PackageDir(name catalogue.PackageName) string {
	return filepath.Join(l.PackagesDir, string(name))
}
