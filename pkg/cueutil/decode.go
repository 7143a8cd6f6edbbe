// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// MaxDocumentSize caps the size of a catalogue or configuration file (5MB).
const MaxDocumentSize = 5 * 1024 * 1024

// Document describes how one CUE file is checked.
type Document struct {
	// Filename is used in error messages.
	Filename string
	// Definition is the schema definition the data is unified with, e.g. "#Catalogue".
	Definition string
	// Partial allows non-concrete values, for files where every key is optional.
	Partial bool
}

// Decode unifies data with doc.Definition from schema, validates the result
// and decodes it into out.
func (doc Document) Decode(schema, data []byte, out any) error {
	filename := doc.Filename
	if filename == "" {
		filename = "<input>"
	}

	if len(data) > MaxDocumentSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), MaxDocumentSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	def := schemaValue.LookupPath(cue.ParsePath(doc.Definition))
	if def.Err() != nil {
		return fmt.Errorf("internal error: schema definition %s not found: %w", doc.Definition, def.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return FormatError(userValue.Err(), filename, cue.Value{})
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(!doc.Partial)); err != nil {
		return FormatError(err, filename, userValue)
	}
	if err := unified.Decode(out); err != nil {
		return FormatError(err, filename, userValue)
	}
	return nil
}
