package practice

import (
	"time"

	"github.com/arjunv/praktis/internal/api"
)

// ProgressPollInterval is how often the aggregate accuracy snapshot is
// refreshed, independent of submission activity.
const ProgressPollInterval = 2 * time.Second

// ProgressTracker holds the latest successfully fetched snapshot. Polls
// are best effort: a failure keeps the previous snapshot on display and
// the next tick tries again; a success replaces it wholesale.
type ProgressTracker struct {
	snap    *api.ProgressSnapshot
	lastErr error
}

// Record applies one poll result.
func (t *ProgressTracker) Record(snap *api.ProgressSnapshot, err error) {
	if err != nil {
		t.lastErr = err
		return
	}
	t.snap = snap
	t.lastErr = nil
}

// Snapshot returns the last good snapshot, or nil before the first
// successful poll.
func (t *ProgressTracker) Snapshot() *api.ProgressSnapshot {
	return t.snap
}

// LastErr returns the most recent poll failure, cleared on success.
func (t *ProgressTracker) LastErr() error {
	return t.lastErr
}
