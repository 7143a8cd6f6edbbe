// SPDX-License-Identifier: MPL-2.0

// Package fswrite writes generated files idempotently: a file is written only
// when it is absent or its bytes differ from the desired content, so
// regenerating an unchanged catalogue touches nothing on disk.
package fswrite
