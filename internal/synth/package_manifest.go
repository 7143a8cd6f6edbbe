// SPDX-License-Identifier: MPL-2.0

package synth

import (
	"bytes"
	"encoding/json"

	"github.com/shimgen/shimgen/pkg/catalogue"
)

// PackageManifest is the package.json of a generated package. Field order is
// the serialization order.
type PackageManifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Main         string            `json:"main"`
	License      string            `json:"license"`
	Files        []string          `json:"files"`
	Scripts      map[string]string `json:"scripts"`
	Dependencies map[string]string `json:"dependencies"`
	Engines      map[string]string `json:"engines"`
}

// NewPackageManifest builds the manifest for entry under l.
func NewPackageManifest(l Layout, entry catalogue.Entry) PackageManifest {
	deps := map[string]string{}
	if entry.NeedsHelper() {
		deps[l.HelperPackage] = l.HelperSpec
	}
	return PackageManifest{
		Name:         l.ScopedName(entry.Name()),
		Version:      l.Version,
		Main:         "./index.js",
		License:      l.License,
		Files:        []string{"*.js"},
		Scripts:      map[string]string{},
		Dependencies: deps,
		Engines: map[string]string{
			l.Runtime: entry.MinRuntime().Or(l.Baseline).String(),
		},
	}
}

// Encode renders the manifest with two-space indentation and a trailing
// newline. Characters such as '>' and '&' are kept literal.
func (m PackageManifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
