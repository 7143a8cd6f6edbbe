// SPDX-License-Identifier: MPL-2.0

// Package semver parses semantic versions and the range expressions used in
// package manifests' engines field.
package semver
