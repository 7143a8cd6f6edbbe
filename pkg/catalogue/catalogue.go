// SPDX-License-Identifier: MPL-2.0

package catalogue

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/shimgen/shimgen/pkg/cueutil"
)

// DefaultFilename is the name reported for the embedded catalogue.
const DefaultFilename = "catalogue.cue"

var (
	//go:embed catalogue_schema.cue
	schema []byte

	//go:embed catalogue.cue
	defaultData []byte
)

type (
	// Catalogue is the complete declarative input of a generation run.
	Catalogue struct {
		Standard   []StandardDescriptor   `json:"standard"`
		SingleFile []SingleFileDescriptor `json:"single_file"`
		Manual     []PackageName          `json:"manual"`

		// Source is the file the catalogue was read from, for error messages.
		Source string `json:"-"`
	}

	// InvalidCatalogueError collects every problem found by Validate.
	// It wraps ErrInvalidCatalogue for errors.Is() compatibility.
	InvalidCatalogueError struct {
		Source      string
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidCatalogueError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid catalogue: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid catalogue %s: %d field error(s)", e.Source, len(e.FieldErrors))
}

// Unwrap returns ErrInvalidCatalogue for errors.Is() compatibility.
func (e *InvalidCatalogueError) Unwrap() error { return ErrInvalidCatalogue }

// Parse decodes CUE catalogue data, checks it against the embedded schema and
// runs Validate. filename is used in error messages only.
func Parse(data []byte, filename string) (*Catalogue, error) {
	doc := cueutil.Document{Filename: filename, Definition: "#Catalogue"}
	cat := &Catalogue{}
	if err := doc.Decode(schema, data, cat); err != nil {
		return nil, err
	}

	cat.Source = filename
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Default returns the catalogue embedded in the binary.
func Default() (*Catalogue, error) {
	return Parse(defaultData, DefaultFilename)
}

// Entries returns the catalogue as tagged entries: standard descriptors first,
// then single-file descriptors, each in authored order.
func (c *Catalogue) Entries() []Entry {
	entries := make([]Entry, 0, len(c.Standard)+len(c.SingleFile))
	for _, d := range c.Standard {
		entries = append(entries, StandardEntry(d))
	}
	for _, d := range c.SingleFile {
		entries = append(entries, SingleFileEntry(d))
	}
	return entries
}

// Names returns the sorted, de-duplicated union of standard, single-file and
// manual package names. These are exactly the override table keys.
func (c *Catalogue) Names() []PackageName {
	names := make([]PackageName, 0, len(c.Standard)+len(c.SingleFile)+len(c.Manual))
	names = append(names, c.Manual...)
	for _, d := range c.Standard {
		names = append(names, d.Name)
	}
	for _, d := range c.SingleFile {
		names = append(names, d.Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Validate checks every entry and rejects names used more than once across
// the standard, single-file and manual lists.
func (c *Catalogue) Validate() error {
	var errs []error
	seen := make(map[PackageName]string)

	claim := func(name PackageName, path string) {
		if first, dup := seen[name]; dup {
			errs = append(errs, c.fieldError(path, fmt.Sprintf("duplicate package name %q (first declared at %s)", name, first)))
			return
		}
		seen[name] = path
	}

	for i, d := range c.Standard {
		path := cueutil.ElementPath("standard", i, string(d.Name))
		if err := StandardEntry(d).Validate(); err != nil {
			errs = append(errs, c.fieldError(path, err.Error()))
		}
		claim(d.Name, path+".name")
	}
	for i, d := range c.SingleFile {
		path := cueutil.ElementPath("single_file", i, string(d.Name))
		if err := SingleFileEntry(d).Validate(); err != nil {
			errs = append(errs, c.fieldError(path, err.Error()))
		}
		claim(d.Name, path+".name")
	}
	for i, name := range c.Manual {
		path := cueutil.ElementPath("manual", i, "")
		if err := name.Validate(); err != nil {
			errs = append(errs, c.fieldError(path, err.Error()))
		}
		claim(name, path)
	}

	if len(errs) > 0 {
		return &InvalidCatalogueError{Source: c.source(), FieldErrors: errs}
	}
	return nil
}

func (c *Catalogue) source() string {
	if c.Source == "" {
		return "<catalogue>"
	}
	return c.Source
}

func (c *Catalogue) fieldError(path, msg string) error {
	return &cueutil.FieldError{File: c.source(), Path: path, Message: msg}
}
