// SPDX-License-Identifier: MPL-2.0

// Package config handles shimgen configuration using Viper with CUE as the
// file format.
//
// Values are layered: built-in defaults, then an optional shimgen.cue in the
// repository root (or the file named by --config), then SHIMGEN_* environment
// variables. The CUE file is validated against an embedded schema
// (config_schema.cue) before it is merged.
package config
