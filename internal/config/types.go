// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shimgen/shimgen/pkg/semver"
	"github.com/shimgen/shimgen/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidNamespace is returned when the package namespace is not a scope.
	ErrInvalidNamespace = errors.New("invalid namespace")
	// ErrInvalidConcurrency is returned for a negative concurrency limit.
	ErrInvalidConcurrency = errors.New("invalid concurrency")
	// ErrInvalidInstallConfig is returned when install is enabled without a command.
	ErrInvalidInstallConfig = errors.New("invalid install config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the palette for rendered help.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the shimgen configuration.
	Config struct {
		// Root is the repository root holding the top-level manifest.
		Root types.FilesystemPath `json:"root" mapstructure:"root" toml:"root"`
		// PackagesDir receives one directory per generated package, relative to Root.
		PackagesDir types.FilesystemPath `json:"packages_dir" mapstructure:"packages_dir" toml:"packages_dir"`
		// Manifest is the top-level package.json, relative to Root.
		Manifest types.FilesystemPath `json:"manifest" mapstructure:"manifest" toml:"manifest"`
		// Catalogue is a CUE catalogue file; empty selects the built-in catalogue.
		Catalogue types.FilesystemPath `json:"catalogue" mapstructure:"catalogue" toml:"catalogue"`
		// Namespace scopes generated package names.
		Namespace      string        `json:"namespace" mapstructure:"namespace" toml:"namespace"`
		Helper         HelperConfig  `json:"helper" mapstructure:"helper" toml:"helper"`
		License        string        `json:"license" mapstructure:"license" toml:"license"`
		Runtime        string        `json:"runtime" mapstructure:"runtime" toml:"runtime"`
		BaselineEngine string        `json:"baseline_engine" mapstructure:"baseline_engine" toml:"baseline_engine"`
		// Concurrency bounds parallel package generation; 0 means unbounded.
		Concurrency int           `json:"concurrency" mapstructure:"concurrency" toml:"concurrency"`
		Install     InstallConfig `json:"install" mapstructure:"install" toml:"install"`
		UI          UIConfig      `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// HelperConfig names the package providing the unbinding helper.
	HelperConfig struct {
		Package string `json:"package" mapstructure:"package" toml:"package"`
		Spec    string `json:"spec" mapstructure:"spec" toml:"spec"`
	}

	// InstallConfig controls the post-generation install step.
	InstallConfig struct {
		Enabled bool   `json:"enabled" mapstructure:"enabled" toml:"enabled"`
		Command string `json:"command" mapstructure:"command" toml:"command"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Root:           ".",
		PackagesDir:    "packages",
		Manifest:       "package.json",
		Catalogue:      "",
		Namespace:      "@nolyfill",
		Helper:         HelperConfig{Package: "@nolyfill/shared", Spec: "workspace:*"},
		License:        "MIT",
		Runtime:        "node",
		BaselineEngine: ">=12.4.0",
		Concurrency:    0,
		Install:        InstallConfig{Enabled: true, Command: "pnpm i"},
		UI:             UIConfig{Verbose: false, ColorScheme: ColorSchemeAuto},
	}
}

// Validate checks every field and returns an *InvalidConfigError listing all problems.
func (c Config) Validate() error {
	var errs []error
	for _, p := range []types.FilesystemPath{c.Root, c.PackagesDir, c.Manifest} {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if !strings.HasPrefix(c.Namespace, "@") || len(c.Namespace) < 2 {
		errs = append(errs, fmt.Errorf("%w %q: must start with '@'", ErrInvalidNamespace, c.Namespace))
	}
	for _, field := range []struct{ name, value string }{
		{"helper.package", c.Helper.Package},
		{"helper.spec", c.Helper.Spec},
		{"license", c.License},
		{"runtime", c.Runtime},
	} {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", field.name))
		}
	}
	if _, err := semver.ParseRange(c.BaselineEngine); err != nil {
		errs = append(errs, fmt.Errorf("baseline_engine: %w", err))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Concurrency))
	}
	if c.Install.Enabled && strings.TrimSpace(c.Install.Command) == "" {
		errs = append(errs, fmt.Errorf("%w: install.command is empty", ErrInvalidInstallConfig))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// RootPath returns Root.
func (c Config) RootPath() types.FilesystemPath {
	return c.Root
}

// PackagesPath returns PackagesDir resolved against Root.
func (c Config) PackagesPath() types.FilesystemPath {
	return c.PackagesDir.Resolve(c.Root)
}

// ManifestPath returns Manifest resolved against Root.
func (c Config) ManifestPath() types.FilesystemPath {
	return c.Manifest.Resolve(c.Root)
}

// CataloguePath returns Catalogue resolved against Root, or "" for the built-in catalogue.
func (c Config) CataloguePath() types.FilesystemPath {
	if c.Catalogue == "" {
		return ""
	}
	return c.Catalogue.Resolve(c.Root)
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error unless cs is auto, dark or light.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// GlamourStyle maps the scheme onto a glamour standard style name.
func (cs ColorScheme) GlamourStyle() string {
	switch cs {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }
