// SPDX-License-Identifier: MPL-2.0

package synth

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shimgen/shimgen/pkg/catalogue"
)

const (
	strictPrologue = "'use strict';\n"

	// File names of a standard package, in write order.
	FileImplementation = "implementation.js"
	FilePolyfill       = "polyfill.js"
	FileShim           = "shim.js"
	FileAuto           = "auto.js"
	FileIndex          = "index.js"
	FilePackageJSON    = "package.json"
)

type (
	// File is one rendered file. Path is relative to the package directory.
	File struct {
		Path    string
		Content []byte
	}

	// Package is the complete in-memory rendering of one catalogue entry.
	Package struct {
		Name  catalogue.PackageName
		Kind  catalogue.Kind
		Dir   string
		Files []File
	}
)

// Render dispatches on the entry kind. The entry is validated first so a
// malformed descriptor never yields a partial file set.
func Render(l Layout, entry catalogue.Entry) (Package, error) {
	if err := entry.Validate(); err != nil {
		return Package{}, err
	}
	switch entry.Kind {
	case catalogue.KindStandard:
		return RenderStandard(l, *entry.Standard)
	case catalogue.KindSingleFile:
		return RenderSingleFile(l, *entry.SingleFile)
	default:
		return Package{}, fmt.Errorf("%w: unknown %s", catalogue.ErrInvalidEntry, entry.Kind)
	}
}

// RenderStandard renders the six files of a shim API package.
func RenderStandard(l Layout, d catalogue.StandardDescriptor) (Package, error) {
	impl := d.Implementation

	var index strings.Builder
	index.WriteString(strictPrologue)
	if d.Static {
		index.WriteString("const impl = " + impl + ";\n")
		index.WriteString("module.exports = impl;\n")
	} else {
		index.WriteString("const { uncurryThis } = require('" + l.HelperPackage + "');\n")
		index.WriteString("const impl = " + impl + ";\n")
		index.WriteString("module.exports = uncurryThis(impl);\n")
	}
	index.WriteString("module.exports.implementation = impl;\n")
	index.WriteString("module.exports.getPolyfill = () => impl;\n")
	index.WriteString("module.exports.shim = () => impl;\n")

	manifest, err := NewPackageManifest(l, catalogue.StandardEntry(d)).Encode()
	if err != nil {
		return Package{}, fmt.Errorf("failed to encode package.json for %s: %w", d.Name, err)
	}

	return Package{
		Name: d.Name,
		Kind: catalogue.KindStandard,
		Dir:  l.PackageDir(d.Name),
		Files: []File{
			{Path: FileImplementation, Content: []byte(strictPrologue + "module.exports = " + impl + ";\n")},
			{Path: FilePolyfill, Content: []byte(strictPrologue + "module.exports = () => " + impl + ";\n")},
			{Path: FileShim, Content: []byte(strictPrologue + "module.exports = () => " + impl + ";\n")},
			{Path: FileAuto, Content: []byte(strictPrologue + "/* noop */\n")},
			{Path: FileIndex, Content: []byte(index.String())},
			{Path: FilePackageJSON, Content: manifest},
		},
	}, nil
}

// RenderSingleFile renders a package whose index module is the descriptor's
// implementation verbatim.
func RenderSingleFile(l Layout, d catalogue.SingleFileDescriptor) (Package, error) {
	manifest, err := NewPackageManifest(l, catalogue.SingleFileEntry(d)).Encode()
	if err != nil {
		return Package{}, fmt.Errorf("failed to encode package.json for %s: %w", d.Name, err)
	}

	return Package{
		Name: d.Name,
		Kind: catalogue.KindSingleFile,
		Dir:  l.PackageDir(d.Name),
		Files: []File{
			{Path: FileIndex, Content: []byte(strictPrologue + d.Implementation + "\n")},
			{Path: FilePackageJSON, Content: manifest},
		},
	}, nil
}

// FilePath returns the path of f inside p.
func (p Package) FilePath(f File) string {
	return filepath.Join(p.Dir, f.Path)
}
