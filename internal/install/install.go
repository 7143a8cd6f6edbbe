// SPDX-License-Identifier: MPL-2.0

// Package install runs the package manager after the top-level manifest has
// been rewritten, so the lockfile and links reflect the new overrides.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultCommand is the install command line used when none is configured.
const DefaultCommand = "pnpm i"

var (
	// ErrEmptyCommand is returned when the configured command line is blank.
	ErrEmptyCommand = errors.New("install command is empty")
	// ErrInstallFailed is the sentinel error wrapped by ExitError.
	ErrInstallFailed = errors.New("install failed")
)

type (
	// Installer refreshes dependencies in a project root.
	Installer interface {
		Install(ctx context.Context, dir string) error
	}

	// ShellInstaller interprets a shell command line in-process.
	ShellInstaller struct {
		command string
		prog    *syntax.File
		stdout  io.Writer
		stderr  io.Writer
		environ []string
	}

	// ShellOption configures a ShellInstaller.
	ShellOption func(*ShellInstaller)

	// NopInstaller skips the install step.
	NopInstaller struct{}

	// ExitError reports a non-zero exit status of the install command.
	ExitError struct {
		Command string
		Code    int
	}
)

// WithOutput sets the streams the command writes to.
func WithOutput(stdout, stderr io.Writer) ShellOption {
	return func(s *ShellInstaller) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithEnviron replaces the inherited environment.
func WithEnviron(environ []string) ShellOption {
	return func(s *ShellInstaller) {
		s.environ = environ
	}
}

// NewShellInstaller parses command up front so syntax errors surface before
// any file is generated.
func NewShellInstaller(command string, opts ...ShellOption) (*ShellInstaller, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyCommand
	}
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "install")
	if err != nil {
		return nil, fmt.Errorf("failed to parse install command %q: %w", command, err)
	}

	s := &ShellInstaller{
		command: command,
		prog:    prog,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Command returns the configured command line.
func (s *ShellInstaller) Command() string {
	return s.command
}

// Install runs the command once in dir. There is no retry.
func (s *ShellInstaller) Install(ctx context.Context, dir string) error {
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(s.environ...)),
		interp.StdIO(nil, s.stdout, s.stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, s.prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &ExitError{Command: s.command, Code: int(exitStatus)}
		}
		return fmt.Errorf("failed to run %q: %w", s.command, err)
	}
	return nil
}

// Install does nothing.
func (NopInstaller) Install(context.Context, string) error {
	return nil
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("install command %q exited with code %d", e.Command, e.Code)
}

// Unwrap returns ErrInstallFailed for errors.Is() compatibility.
func (e *ExitError) Unwrap() error { return ErrInstallFailed }
