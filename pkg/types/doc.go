// SPDX-License-Identifier: MPL-2.0

// Package types holds small typed primitives shared across shimgen packages.
package types
