// SPDX-License-Identifier: MPL-2.0

// Package driver runs a complete generation pass: it validates the catalogue,
// reads the top-level manifest, generates every package concurrently,
// rewrites the manifest's override tables and finally runs the install step.
//
// A failure at any step aborts the run; nothing after the failing step
// happens, and in particular the install step only runs after every package
// and the manifest were written successfully.
package driver
