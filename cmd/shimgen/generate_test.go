// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shimgen/shimgen/internal/issue"
	"github.com/shimgen/shimgen/internal/testutil"
	"github.com/shimgen/shimgen/pkg/types"
)

func TestGenerate_WritesPackagesAndRunsInstall(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ta := newTestApp(t)

	if err := ta.run("--root", repo.Root, "generate", "--catalogue", repo.Catalogue); err != nil {
		t.Fatalf("generate: %v\nstderr: %s", err, ta.stderr)
	}

	index := testutil.MustReadFile(t, repo.PackageFile("has", "index.js"))
	if !strings.Contains(index, "uncurryThis(impl)") {
		t.Errorf("has/index.js should uncurry the implementation:\n%s", index)
	}
	if got := testutil.MustReadFile(t, repo.PackageFile("gopd", "index.js")); got != "'use strict';\nmodule.exports = Object.getOwnPropertyDescriptor;\n" {
		t.Errorf("gopd/index.js = %q", got)
	}

	manifest := testutil.MustReadFile(t, repo.Manifest)
	for _, want := range []string{
		`"function-bind": "npm:@nolyfill/function-bind@latest"`,
		`"has": "workspace:@nolyfill/has@*"`,
		`"patchedDependencies"`,
	} {
		if !strings.Contains(manifest, want) {
			t.Errorf("manifest lacks %s:\n%s", want, manifest)
		}
	}
	if strings.Contains(manifest, `"stale"`) {
		t.Error("stale override entry should be replaced")
	}

	if calls := ta.installer.Calls(); len(calls) != 1 || calls[0] != repo.Root {
		t.Errorf("installer calls = %v, want [%s]", calls, repo.Root)
	}
	if len(ta.commands) != 1 || ta.commands[0] != "pnpm i" {
		t.Errorf("install command = %v, want [pnpm i]", ta.commands)
	}
	if !strings.Contains(ta.stdout.String(), "install completed") {
		t.Errorf("summary missing install line:\n%s", ta.stdout)
	}
}

func TestGenerate_Check(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)

	err := newTestApp(t).run("--root", repo.Root, "generate", "--check", "--catalogue", repo.Catalogue)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitOutOfDate {
		t.Fatalf("--check on a fresh repo = %v, want exit %d", err, types.ExitOutOfDate)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID != issue.OutOfDateId {
		t.Errorf("--check error should carry the out-of-date issue: %v", err)
	}
	if matches, _ := filepath.Glob(filepath.Join(repo.Root, "packages", "*")); len(matches) != 0 {
		t.Errorf("--check wrote packages: %v", matches)
	}

	ta := newTestApp(t)
	if err := ta.run("--root", repo.Root, "generate", "--skip-install", "--catalogue", repo.Catalogue); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(ta.commands) != 0 {
		t.Errorf("--skip-install built an installer: %v", ta.commands)
	}

	ta = newTestApp(t)
	if err := ta.run("--root", repo.Root, "generate", "--check", "--catalogue", repo.Catalogue); err != nil {
		t.Fatalf("--check after generate = %v, want nil", err)
	}
	if !strings.Contains(ta.stdout.String(), "up to date") {
		t.Errorf("summary should report up to date:\n%s", ta.stdout)
	}
}

func TestGenerate_InstallDisabledByConfig(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	testutil.MustWriteFile(t, filepath.Join(repo.Root, "shimgen.cue"), `
catalogue: "catalogue.cue"
namespace: "@shims"
install: {enabled: false}
`)
	ta := newTestApp(t)

	if err := ta.run("--root", repo.Root, "generate"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(ta.installer.Calls()) != 0 {
		t.Error("installer ran although install.enabled is false")
	}
	manifest := testutil.MustReadFile(t, repo.Manifest)
	if !strings.Contains(manifest, `"gopd": "npm:@shims/gopd@latest"`) {
		t.Errorf("configured namespace not applied:\n%s", manifest)
	}
}

func TestGenerate_MissingManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ta := newTestApp(t)

	err := ta.run("--root", root, "generate")
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID != issue.ManifestNotFoundId {
		t.Fatalf("generate without package.json = %v, want manifest-not-found issue", err)
	}
	if len(ta.installer.Calls()) != 0 {
		t.Error("installer ran after a failed run")
	}
}

func TestGenerate_CatalogueErrors(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	invalid := filepath.Join(repo.Root, "bad.cue")
	testutil.MustWriteFile(t, invalid, `standard: [{name: "Bad Name", implementation: "x", static: true}]`)

	tests := []struct {
		name string
		path string
		want issue.Id
	}{
		{"missing", filepath.Join(repo.Root, "nope.cue"), issue.CatalogueNotFoundId},
		{"invalid", invalid, issue.CatalogueInvalidId},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestApp(t).run("--root", repo.Root, "generate", "--catalogue", tt.path)
			var ae *issue.ActionableError
			if !errors.As(err, &ae) || ae.IssueID != tt.want {
				t.Errorf("generate --catalogue %s = %v, want issue %d", tt.name, err, tt.want)
			}
		})
	}

	if got := testutil.MustReadFile(t, repo.Manifest); got != testutil.TopLevelManifest {
		t.Error("manifest changed although the catalogue failed to load")
	}
}
