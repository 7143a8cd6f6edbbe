// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shimgen/shimgen/internal/issue"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := DefaultFilePath(dir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.Namespace != "@nolyfill" {
		t.Errorf("Namespace = %q", cfg.Namespace)
	}
	if cfg.BaselineEngine != ">=12.4.0" {
		t.Errorf("BaselineEngine = %q", cfg.BaselineEngine)
	}
	if !cfg.Install.Enabled || cfg.Install.Command != "pnpm i" {
		t.Errorf("Install = %+v", cfg.Install)
	}
	if cfg.Catalogue != "" {
		t.Errorf("Catalogue = %q, want built-in", cfg.Catalogue)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	loaded, err := LoadWithPath(context.Background(), LoadOptions{BaseDir: typesPath(dir)})
	if err != nil {
		t.Fatalf("LoadWithPath: %v", err)
	}
	if loaded.Path != "" {
		t.Errorf("Path = %q, want none", loaded.Path)
	}
	want := DefaultConfig()
	want.Root = typesPath(dir)
	if diff := cmp.Diff(want, loaded.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CUEFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfigFile(t, dir, `
packages_dir: "shims"
namespace:    "@acme"
concurrency:  4
helper: package: "@acme/bind"
install: enabled: false
ui: color_scheme: "dark"
`)

	loaded, err := LoadWithPath(context.Background(), LoadOptions{BaseDir: typesPath(dir)})
	if err != nil {
		t.Fatalf("LoadWithPath: %v", err)
	}
	if loaded.Path != path {
		t.Errorf("Path = %q, want %q", loaded.Path, path)
	}
	cfg := loaded.Config
	if cfg.PackagesDir != "shims" || cfg.Namespace != "@acme" || cfg.Concurrency != 4 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Helper.Package != "@acme/bind" {
		t.Errorf("Helper.Package = %q", cfg.Helper.Package)
	}
	if cfg.Helper.Spec != "workspace:*" {
		t.Errorf("Helper.Spec = %q, want default kept", cfg.Helper.Spec)
	}
	if cfg.Install.Enabled {
		t.Error("Install.Enabled = true, want false from file")
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q", cfg.UI.ColorScheme)
	}
	if got := cfg.PackagesPath().String(); got != filepath.Join(dir, "shims") {
		t.Errorf("PackagesPath() = %q", got)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", `colour: "red"`},
		{"negative concurrency", `concurrency: -1`},
		{"bad namespace", `namespace: "acme"`},
		{"bad color scheme", `ui: color_scheme: "blue"`},
		{"syntax error", `namespace: "@acme`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeConfigFile(t, dir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{BaseDir: typesPath(dir)})
			if err == nil {
				t.Fatal("expected error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error is not actionable: %v", err)
			}
			if ae.IssueID != issue.ConfigLoadFailedId {
				t.Errorf("IssueID = %d, want ConfigLoadFailedId", ae.IssueID)
			}
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: typesPath(missing)})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("Load() error = %v, want config file not found", err)
	}
}

func TestLoad_ExplicitFileWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `license: "ISC"`)
	other := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(other, []byte(`license: "0BSD"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: typesPath(other),
		BaseDir:        typesPath(dir),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.License != "0BSD" {
		t.Errorf("License = %q, want value from explicit file", cfg.License)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `license: "ISC"`)
	t.Setenv("SHIMGEN_LICENSE", "Apache-2.0")
	t.Setenv("SHIMGEN_INSTALL_COMMAND", "npm install")
	t.Setenv("SHIMGEN_UI_VERBOSE", "true")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{BaseDir: typesPath(dir)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.License != "Apache-2.0" {
		t.Errorf("License = %q, want env override", cfg.License)
	}
	if cfg.Install.Command != "npm install" {
		t.Errorf("Install.Command = %q", cfg.Install.Command)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true from env")
	}
}

func TestLoad_InvalidEnvironmentValue(t *testing.T) {
	t.Setenv("SHIMGEN_BASELINE_ENGINE", ">=not-a-version")

	_, err := NewProvider().Load(context.Background(), LoadOptions{BaseDir: typesPath(t.TempDir())})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := DefaultConfig()
	want.Root = typesPath(dir)
	want.Namespace = "@acme"
	want.Concurrency = 8
	want.Install.Enabled = false
	want.UI.ColorScheme = ColorSchemeLight
	writeConfigFile(t, dir, GenerateCUE(want))

	got, err := NewProvider().Load(context.Background(), LoadOptions{BaseDir: typesPath(dir)})
	if err != nil {
		t.Fatalf("Load generated CUE: %v\n%s", err, GenerateCUE(want))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTOML(t *testing.T) {
	t.Parallel()

	out, err := GenerateTOML(DefaultConfig())
	if err != nil {
		t.Fatalf("GenerateTOML: %v", err)
	}
	var decoded map[string]any
	if err := toml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid TOML: %v\n%s", err, out)
	}
	if decoded["namespace"] != "@nolyfill" {
		t.Errorf("namespace = %v", decoded["namespace"])
	}
	install, ok := decoded["install"].(map[string]any)
	if !ok || install["command"] != "pnpm i" {
		t.Errorf("install table = %v", decoded["install"])
	}
}
