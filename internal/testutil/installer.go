// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"slices"
	"sync"
)

// RecordingInstaller records every Install call and returns Err.
type RecordingInstaller struct {
	mu   sync.Mutex
	dirs []string
	Err  error
}

// Install records dir.
func (r *RecordingInstaller) Install(_ context.Context, dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirs = append(r.dirs, dir)
	return r.Err
}

// Calls returns the directories Install ran in, in call order.
func (r *RecordingInstaller) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.dirs)
}
