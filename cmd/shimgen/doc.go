// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for shimgen.
//
// The root command wires configuration loading, logging and the issue
// catalogue; subcommands generate the package tree, inspect the catalogue
// and report on the override tables.
package cmd
