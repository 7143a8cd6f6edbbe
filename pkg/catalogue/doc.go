// SPDX-License-Identifier: MPL-2.0

// Package catalogue defines capability descriptors, the declarative input of
// the package synthesis engine, and loads them from CUE.
//
// A catalogue has three lists. Standard descriptors produce packages that
// follow the shim API convention (implementation, polyfill, shim, auto and a
// unified index). Single-file descriptors produce a package whose index module
// is the implementation text itself. Manual names refer to hand-maintained
// packages that only contribute entries to the manifest override tables.
//
// Implementation bodies are opaque text: the catalogue never parses them.
package catalogue
