// SPDX-License-Identifier: MPL-2.0

package catalogue

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shimgen/shimgen/pkg/semver"
)

const (
	// KindStandard marks an entry rendered as a six-file shim API package.
	KindStandard Kind = iota + 1
	// KindSingleFile marks an entry rendered as index.js + package.json.
	KindSingleFile
)

var (
	// ErrInvalidPackageName is the sentinel error wrapped by InvalidPackageNameError.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrInvalidEngineRange is the sentinel error wrapped by InvalidEngineRangeError.
	ErrInvalidEngineRange = errors.New("invalid engine range")
	// ErrInvalidEntry is returned for an Entry whose kind and payload disagree.
	ErrInvalidEntry = errors.New("invalid catalogue entry")
	// ErrInvalidCatalogue is the sentinel error wrapped by InvalidCatalogueError.
	ErrInvalidCatalogue = errors.New("invalid catalogue")

	packageNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
)

type (
	// PackageName is the unscoped name of a generated package, e.g. "object.assign".
	PackageName string

	// InvalidPackageNameError is returned when a PackageName is not a lowercase
	// identifier made of letters, digits, dots, hyphens and underscores.
	InvalidPackageNameError struct {
		Value PackageName
	}

	// EngineRange is a runtime version range such as ">=12.4.0".
	// The zero value means "use the configured baseline".
	EngineRange string

	// InvalidEngineRangeError is returned when an EngineRange does not parse.
	InvalidEngineRangeError struct {
		Value EngineRange
		Err   error
	}

	// Kind selects the generation strategy for an Entry.
	Kind int

	// StandardDescriptor describes a package following the shim API convention.
	StandardDescriptor struct {
		Name PackageName `json:"name"`
		// Implementation is the source text of the replacement value.
		Implementation string `json:"implementation"`
		// Static is true when Implementation is usable without rebinding to a receiver.
		Static bool `json:"static"`
		// NeedsUnbindHelper declares the helper dependency even when Static is true.
		NeedsUnbindHelper bool        `json:"needs_unbind_helper"`
		MinRuntime        EngineRange `json:"min_runtime,omitempty"`
	}

	// SingleFileDescriptor describes a package whose index module is Implementation verbatim.
	SingleFileDescriptor struct {
		Name              PackageName `json:"name"`
		Implementation    string      `json:"implementation"`
		NeedsUnbindHelper bool        `json:"needs_unbind_helper"`
		MinRuntime        EngineRange `json:"min_runtime,omitempty"`
	}

	// Entry is the tagged union consumed by the generator: exactly one of
	// Standard or SingleFile is set, matching Kind.
	Entry struct {
		Kind       Kind
		Standard   *StandardDescriptor
		SingleFile *SingleFileDescriptor
	}
)

// String returns the string representation of the PackageName.
func (n PackageName) String() string { return string(n) }

// Validate returns an error if the name is not a valid package name.
func (n PackageName) Validate() error {
	if !packageNameRegex.MatchString(string(n)) {
		return &InvalidPackageNameError{Value: n}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name %q: must match %s", e.Value, packageNameRegex)
}

// Unwrap returns ErrInvalidPackageName for errors.Is() compatibility.
func (e *InvalidPackageNameError) Unwrap() error { return ErrInvalidPackageName }

// String returns the string representation of the EngineRange.
func (r EngineRange) String() string { return string(r) }

// Validate parses the range. The zero value is valid.
func (r EngineRange) Validate() error {
	if r == "" {
		return nil
	}
	if _, err := semver.ParseRange(string(r)); err != nil {
		return &InvalidEngineRangeError{Value: r, Err: err}
	}
	return nil
}

// Or returns r, or fallback when r is the zero value.
func (r EngineRange) Or(fallback EngineRange) EngineRange {
	if strings.TrimSpace(string(r)) == "" {
		return fallback
	}
	return r
}

// Error implements the error interface.
func (e *InvalidEngineRangeError) Error() string {
	return fmt.Sprintf("invalid engine range %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidEngineRange for errors.Is() compatibility.
func (e *InvalidEngineRangeError) Unwrap() error { return ErrInvalidEngineRange }

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindSingleFile:
		return "single-file"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// StandardEntry wraps d as an Entry.
func StandardEntry(d StandardDescriptor) Entry {
	return Entry{Kind: KindStandard, Standard: &d}
}

// SingleFileEntry wraps d as an Entry.
func SingleFileEntry(d SingleFileDescriptor) Entry {
	return Entry{Kind: KindSingleFile, SingleFile: &d}
}

// Name returns the package name of whichever descriptor the entry carries.
func (e Entry) Name() PackageName {
	switch {
	case e.Standard != nil:
		return e.Standard.Name
	case e.SingleFile != nil:
		return e.SingleFile.Name
	default:
		return ""
	}
}

// NeedsHelper reports whether the generated package must declare the
// unbinding helper dependency.
func (e Entry) NeedsHelper() bool {
	switch e.Kind {
	case KindStandard:
		return !e.Standard.Static || e.Standard.NeedsUnbindHelper
	case KindSingleFile:
		return e.SingleFile.NeedsUnbindHelper
	default:
		return false
	}
}

// MinRuntime returns the descriptor's engine range (possibly the zero value).
func (e Entry) MinRuntime() EngineRange {
	switch {
	case e.Standard != nil:
		return e.Standard.MinRuntime
	case e.SingleFile != nil:
		return e.SingleFile.MinRuntime
	default:
		return ""
	}
}

// Validate checks that Kind matches the payload and that the descriptor's
// fields are usable for generation.
func (e Entry) Validate() error {
	var (
		name PackageName
		impl string
		rng  EngineRange
	)
	switch e.Kind {
	case KindStandard:
		if e.Standard == nil || e.SingleFile != nil {
			return fmt.Errorf("%w: kind %s requires exactly a standard descriptor", ErrInvalidEntry, e.Kind)
		}
		name, impl, rng = e.Standard.Name, e.Standard.Implementation, e.Standard.MinRuntime
	case KindSingleFile:
		if e.SingleFile == nil || e.Standard != nil {
			return fmt.Errorf("%w: kind %s requires exactly a single-file descriptor", ErrInvalidEntry, e.Kind)
		}
		name, impl, rng = e.SingleFile.Name, e.SingleFile.Implementation, e.SingleFile.MinRuntime
	default:
		return fmt.Errorf("%w: unknown %s", ErrInvalidEntry, e.Kind)
	}

	if err := name.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if strings.TrimSpace(impl) == "" {
		return fmt.Errorf("%w: %s: empty implementation", ErrInvalidEntry, name)
	}
	if err := rng.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidEntry, name, err)
	}
	return nil
}
