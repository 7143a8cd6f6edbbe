// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for shimgen: ActionableError
// carries the failed operation, the resource involved, remediation hints and
// an optional issue catalogue entry whose Markdown help the CLI renders.
package issue
