// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shimgen/shimgen/internal/issue"
	"github.com/shimgen/shimgen/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "shimgen"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "shimgen"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. SHIMGEN_INSTALL_ENABLED.
	EnvPrefix = "SHIMGEN"
)

//go:embed config_schema.cue
var configSchema string

// DefaultFilePath returns where the config file is looked up under root.
func DefaultFilePath(root string) string {
	return filepath.Join(root, ConfigFileName+"."+ConfigFileExt)
}

// loadWithOptions performs option-driven config loading and reports which
// file, if any, was read.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		path := opts.ConfigFilePath.String()
		if !fileExists(path) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'shimgen config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		resolvedPath = path
	} else {
		base := opts.BaseDir.String()
		if base == "" {
			base = "."
		}
		if candidate := DefaultFilePath(base); fileExists(candidate) {
			resolvedPath = candidate
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if opts.BaseDir != "" && cfg.Root == DefaultConfig().Root {
		cfg.Root = opts.BaseDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check SHIMGEN_* environment variables for typos").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("root", d.Root.String())
	v.SetDefault("packages_dir", d.PackagesDir.String())
	v.SetDefault("manifest", d.Manifest.String())
	v.SetDefault("catalogue", d.Catalogue.String())
	v.SetDefault("namespace", d.Namespace)
	v.SetDefault("helper.package", d.Helper.Package)
	v.SetDefault("helper.spec", d.Helper.Spec)
	v.SetDefault("license", d.License)
	v.SetDefault("runtime", d.Runtime)
	v.SetDefault("baseline_engine", d.BaselineEngine)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("install.enabled", d.Install.Enabled)
	v.SetDefault("install.command", d.Install.Command)
	v.SetDefault("ui.verbose", d.UI.Verbose)
	v.SetDefault("ui.color_scheme", d.UI.ColorScheme.String())
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper. Fields are optional, so the file is
// decoded to a partial map rather than into Config.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	doc := cueutil.Document{Filename: path, Definition: "#Config", Partial: true}
	var configMap map[string]any
	if err := doc.Decode([]byte(configSchema), data, &configMap); err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}

// GenerateCUE renders cfg as a shimgen.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// shimgen configuration file\n\n")
	fmt.Fprintf(&sb, "root: %q\n", cfg.Root)
	fmt.Fprintf(&sb, "packages_dir: %q\n", cfg.PackagesDir)
	fmt.Fprintf(&sb, "manifest: %q\n", cfg.Manifest)
	fmt.Fprintf(&sb, "catalogue: %q\n", cfg.Catalogue)
	fmt.Fprintf(&sb, "namespace: %q\n", cfg.Namespace)
	fmt.Fprintf(&sb, "license: %q\n", cfg.License)
	fmt.Fprintf(&sb, "runtime: %q\n", cfg.Runtime)
	fmt.Fprintf(&sb, "baseline_engine: %q\n", cfg.BaselineEngine)
	fmt.Fprintf(&sb, "concurrency: %d\n", cfg.Concurrency)

	sb.WriteString("\nhelper: {\n")
	fmt.Fprintf(&sb, "\tpackage: %q\n", cfg.Helper.Package)
	fmt.Fprintf(&sb, "\tspec: %q\n", cfg.Helper.Spec)
	sb.WriteString("}\n")

	sb.WriteString("\ninstall: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", cfg.Install.Enabled)
	fmt.Fprintf(&sb, "\tcommand: %q\n", cfg.Install.Command)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders cfg as TOML.
func GenerateTOML(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return out, nil
}
