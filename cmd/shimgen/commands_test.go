// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shimgen/shimgen/internal/testutil"
	"github.com/shimgen/shimgen/pkg/catalogue"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
)

func TestListRows(t *testing.T) {
	t.Parallel()

	cat, err := catalogue.Parse([]byte(testutil.SmallCatalogue), "catalogue.cue")
	if err != nil {
		t.Fatal(err)
	}

	rows, err := listRows(cat, ">=12.4.0", "")
	if err != nil {
		t.Fatal(err)
	}
	want := []listRow{
		{name: "function-bind", kind: manualKind},
		{name: "gopd", kind: "single-file", engine: ">=12.4.0"},
		{name: "has", kind: "standard", helper: true, engine: ">=12.4.0"},
		{name: "object-keys", kind: "standard", engine: ">=12.4.0"},
	}
	if diff := cmp.Diff(want, rows, cmp.AllowUnexported(listRow{})); diff != "" {
		t.Errorf("listRows mismatch (-want +got):\n%s", diff)
	}

	rows, err = listRows(cat, ">=12.4.0", "single-file")
	if err != nil || len(rows) != 1 || rows[0].name != "gopd" {
		t.Errorf("kind filter = %v, %v", rows, err)
	}

	if _, err := listRows(cat, "", "bogus"); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestListCommand(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ta := newTestApp(t)
	if err := ta.run("--root", repo.Root, "list", "--catalogue", repo.Catalogue, "--kind", "standard"); err != nil {
		t.Fatal(err)
	}
	out := ta.stdout.String()
	if !strings.Contains(out, "has") || !strings.Contains(out, "object-keys") || strings.Contains(out, "gopd") {
		t.Errorf("unexpected list output:\n%s", out)
	}
}

func TestOverridesCommand(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)

	ta := newTestApp(t)
	if err := ta.run("--root", repo.Root, "overrides", "--json", "--catalogue", repo.Catalogue); err != nil {
		t.Fatal(err)
	}
	want := `{
  "function-bind": "npm:@nolyfill/function-bind@latest",
  "gopd": "npm:@nolyfill/gopd@latest",
  "has": "npm:@nolyfill/has@latest",
  "object-keys": "npm:@nolyfill/object-keys@latest"
}
`
	if diff := cmp.Diff(want, ta.stdout.String()); diff != "" {
		t.Errorf("overrides --json mismatch (-want +got):\n%s", diff)
	}

	ta = newTestApp(t)
	if err := ta.run("--root", repo.Root, "overrides", "--workspace", "--catalogue", repo.Catalogue); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ta.stdout.String(), "workspace:@nolyfill/gopd@*") {
		t.Errorf("workspace table missing gopd:\n%s", ta.stdout)
	}
	if _, err := os.Stat(filepath.Join(repo.Root, "packages")); !os.IsNotExist(err) {
		t.Error("overrides must not write anything")
	}
}

func TestStaleCommand(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	testutil.MustMkdirAll(t, filepath.Join(repo.Root, "packages", "has"), 0o755)
	testutil.MustMkdirAll(t, filepath.Join(repo.Root, "packages", "is-nan"), 0o755)

	ta := newTestApp(t)
	if err := ta.run("--root", repo.Root, "stale", "--catalogue", repo.Catalogue); err != nil {
		t.Fatal(err)
	}
	out := ta.stdout.String()
	if !strings.Contains(out, "is-nan") || strings.Contains(out, "has") {
		t.Errorf("unexpected stale output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(repo.Root, "packages", "is-nan")); err != nil {
		t.Error("stale must not delete anything")
	}
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	cfgPath := filepath.Join(repo.Root, "shimgen.cue")
	testutil.MustWriteFile(t, cfgPath, "concurrency: 4\n")

	ta := newTestApp(t)
	if err := ta.run("--root", repo.Root, "config", "path"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(ta.stdout.String()); got != cfgPath {
		t.Errorf("config path = %q, want %q", got, cfgPath)
	}

	ta = newTestApp(t)
	if err := ta.run("--root", repo.Root, "config", "dump", "--format", "toml"); err != nil {
		t.Fatal(err)
	}
	var dumped struct {
		Concurrency int    `toml:"concurrency"`
		Namespace   string `toml:"namespace"`
	}
	if err := toml.Unmarshal(ta.stdout.Bytes(), &dumped); err != nil {
		t.Fatalf("dump is not TOML: %v\n%s", err, ta.stdout)
	}
	if dumped.Concurrency != 4 || dumped.Namespace != "@nolyfill" {
		t.Errorf("dumped = %+v", dumped)
	}

	ta = newTestApp(t)
	if err := ta.run("--root", repo.Root, "config", "dump"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ta.stdout.String(), "concurrency: 4") {
		t.Errorf("CUE dump missing concurrency:\n%s", ta.stdout)
	}

	ta = newTestApp(t)
	if err := ta.run("--root", repo.Root, "config", "dump", "--format", "yaml"); err == nil {
		t.Error("unknown dump format should fail")
	}

	ta = newTestApp(t)
	if err := ta.run("--root", repo.Root, "config", "show"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ta.stdout.String(), cfgPath) {
		t.Errorf("config show should name the file:\n%s", ta.stdout)
	}
}

func TestIssuesCommand(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	if err := ta.run("issues", "6"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ta.stdout.String(), "Issue 6") {
		t.Errorf("issues output:\n%s", ta.stdout)
	}

	for _, arg := range []string{"abc", "999"} {
		if err := newTestApp(t).run("issues", arg); err == nil {
			t.Errorf("issues %s should fail", arg)
		}
	}
}
