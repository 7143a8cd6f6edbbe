// SPDX-License-Identifier: MPL-2.0

// Package testutil provides fixtures and helpers for shimgen tests: a
// throwaway repository with a top-level manifest and catalogue, file helpers
// that fail the test on error, and a recording installer.
package testutil
