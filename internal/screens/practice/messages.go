package practice

import (
	"time"

	"github.com/arjunv/praktis/internal/api"
)

// bootstrapMsg is sent when session creation completes.
type bootstrapMsg struct {
	Session *api.Session
	Err     error
}

// typesMsg is sent when the available item types have been fetched.
type typesMsg struct {
	Types []string
	Err   error
}

// itemMsg is sent when the next item has been fetched.
type itemMsg struct {
	Payload *api.ServePayload
	Err     error
}

// submitMsg carries the raw grading response for one submission, plus
// the request fields the screen still needs afterwards. StepID is the
// step that was answered, captured before any step advance.
type submitMsg struct {
	Result   *api.SubmitResult
	Err      error
	ChoiceID string
	StepID   string
}

// progressTickMsg fires the next progress poll.
type progressTickMsg time.Time

// progressMsg is sent when a progress poll completes.
type progressMsg struct {
	Snap *api.ProgressSnapshot
	Err  error
}

// cooldownTickMsg drives the rate-limit countdown. Seq ties the tick to
// the cooldown that started it so a stale chain cannot re-lock the
// button after a newer cooldown replaced it.
type cooldownTickMsg struct {
	Seq int
}

// hintMsg is sent when hint generation completes.
type hintMsg struct {
	Text string
	Err  error
}
