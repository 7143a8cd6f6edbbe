// SPDX-License-Identifier: MPL-2.0

// Package cueutil checks shimgen's CUE documents (the descriptor catalogue
// and the configuration file) against their embedded schemas.
//
// Decode compiles the document, unifies it with a schema definition and
// decodes the result. Failures come back as FieldErrors whose paths name
// list elements by their "name" field, so a bad descriptor reads as
//
//	catalogue.cue: standard[11] (object.hasown).implementation: invalid value "" (out of bound !="")
//
// rather than as a bare index.
package cueutil
