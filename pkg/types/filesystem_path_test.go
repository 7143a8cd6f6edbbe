// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		wantErr bool
	}{
		{"absolute path", FilesystemPath("/srv/repo"), false},
		{"relative path", FilesystemPath("packages"), false},
		{"dot path", FilesystemPath("."), false},
		{"empty is invalid", FilesystemPath(""), true},
		{"whitespace only is invalid", FilesystemPath("   "), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.path.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("FilesystemPath(%q).Validate() error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFilesystemPath) {
					t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
				}
				var fpErr *InvalidFilesystemPathError
				if !errors.As(err, &fpErr) {
					t.Errorf("error should be *InvalidFilesystemPathError, got: %T", err)
				}
			}
		})
	}
}

func TestFilesystemPath_Resolve(t *testing.T) {
	t.Parallel()

	base := FilesystemPath(t.TempDir())

	abs := FilesystemPath(filepath.Join(t.TempDir(), "package.json"))
	if got := abs.Resolve(base); got != abs {
		t.Errorf("Resolve(absolute) = %q, want %q", got, abs)
	}

	rel := FilesystemPath("package.json")
	want := FilesystemPath(filepath.Join(string(base), "package.json"))
	if got := rel.Resolve(base); got != want {
		t.Errorf("Resolve(relative) = %q, want %q", got, want)
	}
}
