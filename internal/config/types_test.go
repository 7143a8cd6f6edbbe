// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty namespace", func(c *Config) { c.Namespace = "" }, ErrInvalidNamespace},
		{"unscoped namespace", func(c *Config) { c.Namespace = "nolyfill" }, ErrInvalidNamespace},
		{"negative concurrency", func(c *Config) { c.Concurrency = -2 }, ErrInvalidConcurrency},
		{"install without command", func(c *Config) { c.Install.Command = " " }, ErrInvalidInstallConfig},
		{"bad color scheme", func(c *Config) { c.UI.ColorScheme = "neon" }, ErrInvalidColorScheme},
		{"empty manifest", func(c *Config) { c.Manifest = "" }, nil},
		{"bad baseline", func(c *Config) { c.BaselineEngine = "twelve" }, nil},
		{"empty license", func(c *Config) { c.License = "" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want to wrap %v", err, tt.want)
			}
		})
	}
}

func TestConfig_DisabledInstallNeedsNoCommand(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Install = InstallConfig{Enabled: false}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfig_Paths(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "catalogue.cue")
	cfg := DefaultConfig()
	cfg.Root = "repo"

	if got, want := cfg.ManifestPath().String(), filepath.Join("repo", "package.json"); got != want {
		t.Errorf("ManifestPath() = %q, want %q", got, want)
	}
	if got := cfg.CataloguePath(); got != "" {
		t.Errorf("CataloguePath() = %q, want built-in", got)
	}
	cfg.Catalogue = typesPath(abs)
	if got := cfg.CataloguePath().String(); got != abs {
		t.Errorf("CataloguePath() = %q, want absolute path kept", got)
	}
}

func TestColorScheme_GlamourStyle(t *testing.T) {
	t.Parallel()

	tests := map[ColorScheme]string{
		ColorSchemeAuto:  "auto",
		ColorSchemeDark:  "dark",
		ColorSchemeLight: "light",
	}
	for cs, want := range tests {
		if got := cs.GlamourStyle(); got != want {
			t.Errorf("%s.GlamourStyle() = %q, want %q", cs, got, want)
		}
		if err := cs.Validate(); err != nil {
			t.Errorf("%s.Validate() = %v", cs, err)
		}
	}
}
