// SPDX-License-Identifier: MPL-2.0

package install

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewShellInstaller_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
		wantErr error
	}{
		{"empty", "", ErrEmptyCommand},
		{"blank", "   ", ErrEmptyCommand},
		{"unterminated quote", "pnpm 'i", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewShellInstaller(tt.command)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestShellInstaller_Install_RunsInDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	inst, err := NewShellInstaller(`echo ran > marker.txt; echo "$SHIMGEN_TEST_VALUE"`,
		WithOutput(&stdout, &stderr),
		WithEnviron([]string{"SHIMGEN_TEST_VALUE=hello"}),
	)
	if err != nil {
		t.Fatalf("NewShellInstaller: %v", err)
	}

	if err := inst.Install(context.Background(), dir); err != nil {
		t.Fatalf("Install: %v (stderr %q)", err, stderr.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "marker.txt"))
	if err != nil {
		t.Fatalf("marker not written in dir: %v", err)
	}
	if strings.TrimSpace(string(data)) != "ran" {
		t.Errorf("marker = %q", data)
	}
	if strings.TrimSpace(stdout.String()) != "hello" {
		t.Errorf("stdout = %q, want hello", stdout.String())
	}
}

func TestShellInstaller_Install_ExitCode(t *testing.T) {
	t.Parallel()

	inst, err := NewShellInstaller("exit 3", WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}

	err = inst.Install(context.Background(), t.TempDir())
	if !errors.Is(err, ErrInstallFailed) {
		t.Fatalf("Install() error = %v, want ErrInstallFailed", err)
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Install() error is not *ExitError")
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
	if exitErr.Command != "exit 3" {
		t.Errorf("Command = %q", exitErr.Command)
	}
}

func TestNopInstaller(t *testing.T) {
	t.Parallel()

	var inst Installer = NopInstaller{}
	if err := inst.Install(context.Background(), "/does/not/exist"); err != nil {
		t.Errorf("NopInstaller.Install() = %v", err)
	}
}
