// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/shimgen/shimgen/internal/install"
	"github.com/shimgen/shimgen/internal/testutil"
)

type testApp struct {
	*App
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	installer *testutil.RecordingInstaller
	commands  []string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ta := &testApp{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		installer: &testutil.RecordingInstaller{},
	}
	app, err := NewApp(Dependencies{
		Stdout: ta.stdout,
		Stderr: ta.stderr,
		NewInstaller: func(command string, _, _ io.Writer) (install.Installer, error) {
			ta.commands = append(ta.commands, command)
			return ta.installer, nil
		},
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	ta.App = app
	return ta
}

// run executes the CLI with args and returns the command error.
func (ta *testApp) run(args ...string) error {
	root := NewRootCommand(ta.App)
	root.SetArgs(args)
	root.SetOut(ta.stdout)
	root.SetErr(ta.stderr)
	return root.ExecuteContext(context.Background())
}
