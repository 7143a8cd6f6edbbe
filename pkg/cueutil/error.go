// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
)

// labelField is the field that identifies an element of a descriptor list.
const labelField = "name"

type (
	// FieldError reports a problem with one field of a CUE document.
	FieldError struct {
		// File is the document the field belongs to.
		File string
		// Path locates the field, e.g. "standard[3] (has).implementation".
		Path string
		// Message describes the problem.
		Message string
	}

	// FieldErrors is returned when a document has more than one bad field.
	FieldErrors []*FieldError
)

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Error implements the error interface.
func (es FieldErrors) Error() string {
	if len(es) == 0 {
		return "no field errors"
	}
	lines := make([]string, 0, len(es))
	for _, e := range es {
		if e.Path != "" {
			lines = append(lines, e.Path+": "+e.Message)
		} else {
			lines = append(lines, e.Message)
		}
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", es[0].File, strings.Join(lines, "\n  "))
}

// ElementPath renders the path of a list element, adding its name when known:
// ElementPath("standard", 11, "object.hasown") is "standard[11] (object.hasown)".
func ElementPath(list string, index int, name string) string {
	if name == "" {
		return fmt.Sprintf("%s[%d]", list, index)
	}
	return fmt.Sprintf("%s[%d] (%s)", list, index, name)
}

// FormatError converts a CUE error into a *FieldError, or FieldErrors when
// CUE reports several. List indices in paths are labelled with the element's
// name looked up in data; pass the zero Value when the document did not
// compile. Non-CUE errors are wrapped with the file name only.
func FormatError(err error, filename string, data cue.Value) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}

	fieldErrs := make(FieldErrors, 0, len(cueErrors))
	for _, e := range cueErrors {
		parts := errors.Path(e)
		msg := e.Error()

		// CUE sometimes repeats the raw path inside the message.
		if raw := strings.Join(parts, "."); raw != "" && strings.HasPrefix(msg, raw) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, raw), ":"))
		}

		fieldErrs = append(fieldErrs, &FieldError{
			File:    filename,
			Path:    labelledPath(parts, data),
			Message: msg,
		})
	}

	if len(fieldErrs) == 1 {
		return fieldErrs[0]
	}
	return fieldErrs
}

// labelledPath renders CUE path elements as JSON-path notation, naming list
// elements from data: ["standard", "3", "name"] becomes "standard[3] (has).name".
func labelledPath(parts []string, data cue.Value) string {
	var b strings.Builder
	sels := make([]cue.Selector, 0, len(parts))

	for i, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil || i == 0 {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(part)
			sels = append(sels, cue.Str(part))
			continue
		}

		sels = append(sels, cue.Index(idx))
		b.WriteString(ElementPath("", idx, elementName(data, sels)))
	}

	return b.String()
}

// elementName returns the string "name" field of the element at sels, or ""
// when data does not hold one.
func elementName(data cue.Value, sels []cue.Selector) string {
	if !data.Exists() {
		return ""
	}
	v := data.LookupPath(cue.MakePath(slices.Concat(sels, []cue.Selector{cue.Str(labelField)})...))
	if !v.Exists() {
		return ""
	}
	name, err := v.String()
	if err != nil {
		return ""
	}
	return name
}
