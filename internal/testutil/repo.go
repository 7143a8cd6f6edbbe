// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

const (
	// TopLevelManifest is a monorepo package.json with a stale override
	// table and unrelated keys that generation must preserve.
	TopLevelManifest = `{
  "name": "shim-monorepo",
  "version": "1.2.3",
  "private": true,
  "overrides": {
    "stale": "npm:@nolyfill/stale@latest"
  },
  "pnpm": {
    "patchedDependencies": {
      "left-pad@1.3.0": "patches/left-pad.patch"
    }
  },
  "devDependencies": {
    "typescript": "^5.0.0"
  }
}
`

	// SmallCatalogue covers every entry kind: a static and a non-static
	// standard package, a single-file package and a manual entry.
	SmallCatalogue = `standard: [
	{name: "object-keys", implementation: "Object.keys", static: true},
	{name: "has", implementation: "Object.prototype.hasOwnProperty", static: false},
]
single_file: [
	{name: "gopd", implementation: "module.exports = Object.getOwnPropertyDescriptor;"},
]
manual: ["function-bind"]
`
)

// Repo is a throwaway repository root on disk.
type Repo struct {
	Root      string
	Manifest  string
	Catalogue string
}

// NewRepo writes TopLevelManifest and SmallCatalogue into a fresh temporary
// directory.
func NewRepo(t testing.TB) Repo {
	t.Helper()
	root := t.TempDir()
	r := Repo{
		Root:      root,
		Manifest:  filepath.Join(root, "package.json"),
		Catalogue: filepath.Join(root, "catalogue.cue"),
	}
	MustWriteFile(t, r.Manifest, TopLevelManifest)
	MustWriteFile(t, r.Catalogue, SmallCatalogue)
	return r
}

// PackageFile returns the path of file inside the generated package name.
func (r Repo) PackageFile(name, file string) string {
	return filepath.Join(r.Root, "packages", name, file)
}
