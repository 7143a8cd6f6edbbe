// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// KeyOverrides is the registry-facing override table.
	KeyOverrides = "overrides"
	// KeyWorkspace holds the workspace-scoped settings object.
	KeyWorkspace = "pnpm"
)

var (
	// ErrMissingField is returned when the manifest lacks a required field.
	ErrMissingField = errors.New("manifest field missing")
)

type (
	// Manifest is the top-level package manifest that drives a generation run.
	Manifest struct {
		root *Object
		// Path is where the manifest was read from, for error messages.
		Path string
	}

	// MissingFieldError names the required manifest field that was absent or
	// not a non-empty string. It wraps ErrMissingField.
	MissingFieldError struct {
		Path  string
		Field string
	}
)

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %q must be a non-empty string", e.Path, e.Field)
}

// Unwrap returns ErrMissingField for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Parse decodes manifest data and checks that name and version are present.
func Parse(data []byte, path string) (*Manifest, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m := &Manifest{root: root, Path: path}
	for _, field := range []string{"name", "version"} {
		if v, ok := root.GetString(field); !ok || strings.TrimSpace(v) == "" {
			return nil, &MissingFieldError{Path: path, Field: field}
		}
	}
	return m, nil
}

// Name returns the manifest's package name.
func (m *Manifest) Name() string {
	v, _ := m.root.GetString("name")
	return v
}

// Version returns the manifest version every generated package inherits.
func (m *Manifest) Version() string {
	v, _ := m.root.GetString("version")
	return v
}

// Root exposes the underlying ordered object.
func (m *Manifest) Root() *Object {
	return m.root
}

// ApplyOverrides replaces the registry override table and the workspace
// override table. The registry table is stored under "overrides"; the
// workspace table under "pnpm.overrides". Other keys, including other keys of
// the workspace object, keep their value and position. A workspace key that
// is not an object is replaced.
func (m *Manifest) ApplyOverrides(registry, workspace OverrideTable) {
	m.root.Set(KeyOverrides, registry.Object())

	ws, ok := m.root.GetObject(KeyWorkspace)
	if !ok {
		ws = NewObject()
	}
	ws.Set(KeyOverrides, workspace.Object())
	m.root.Set(KeyWorkspace, ws)
}

// Encode renders the manifest.
func (m *Manifest) Encode() ([]byte, error) {
	return m.root.Encode()
}
