// SPDX-License-Identifier: MPL-2.0

// Package synth renders catalogue entries into shim packages and writes them
// through an idempotent file writer.
//
// A standard entry becomes six files (implementation.js, polyfill.js, shim.js,
// auto.js, index.js and package.json); a single-file entry becomes index.js and
// package.json. Rendering is pure: Render returns the complete file set in
// memory and Generator.Generate persists it.
package synth
