// SPDX-License-Identifier: MPL-2.0

// Package manifest reads and rewrites the top-level package manifest
// (package.json) without disturbing key order, and builds the dependency
// override tables that pin every catalogue name to its generated package.
//
// Output follows the layout of a two-space indented JSON document with a
// trailing newline; HTML-sensitive characters are not escaped so ranges such
// as ">=12.4.0" stay readable.
package manifest
