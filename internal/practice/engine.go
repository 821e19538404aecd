package practice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/arjunv/praktis/internal/api"
)

// Result is the grading outcome of the last submission.
type Result int

const (
	ResultNone Result = iota
	ResultCorrect
	ResultIncorrect
)

// SubmissionState is the transient client state of the active step.
// Reset whenever the active item or step changes.
type SubmissionState struct {
	SelectedChoiceID string
	LastResult       Result
	Explanation      string // markup, empty when the server sent none
	CooldownUntil    time.Time
}

// Reset clears the state for a new item or step.
func (st *SubmissionState) Reset() {
	*st = SubmissionState{}
}

// CoolingDown reports whether submissions are still locked at now.
func (st *SubmissionState) CoolingDown(now time.Time) bool {
	return now.Before(st.CooldownUntil)
}

// OutcomeKind classifies what a Submit call did.
type OutcomeKind int

const (
	// OutcomeSuppressed means a precondition failed and no request was
	// dispatched. Callers are expected to keep the action disabled; the
	// engine treats the violation as a no-op, not an error.
	OutcomeSuppressed OutcomeKind = iota

	// OutcomeGraded means the server graded the step.
	OutcomeGraded

	// OutcomeRateLimited means the server answered 429 and a cooldown
	// is now active. The attempt counts as not-yet-made.
	OutcomeRateLimited

	// OutcomeSecurityRejected means the anti-forgery token was refused.
	// Terminal for the session; never retried automatically.
	OutcomeSecurityRejected

	// OutcomeTransportError covers any other transport or decode
	// failure. Surfaced, not retried.
	OutcomeTransportError
)

// Outcome reports the effect of one Submit call.
type Outcome struct {
	Kind OutcomeKind

	// Graded fields.
	Correct      bool
	Explanation  string
	AdvancedStep bool // step pointer moved within the same item
	LoadNext     bool // correct on the final step: fetch a new item

	// Rate-limit fields.
	CooldownUntil time.Time

	// Failure detail for the security/transport kinds.
	Err error
}

// Engine submits answers for the active step and applies the response to
// client state. It performs no retries of its own: rate limits become
// cooldowns the user waits out, everything else surfaces once.
type Engine struct {
	svc api.Service
	log *zap.Logger

	// Now is the clock, swappable in tests.
	Now func() time.Time
}

// NewEngine creates an Engine over the given service.
func NewEngine(svc api.Service, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{svc: svc, log: log, Now: time.Now}
}

// Request builds the submission for the active step. ok is false when a
// precondition fails: no choice selected, session not ready, cooldown
// active, or no item loaded. A violated precondition suppresses the
// attempt entirely — no request is dispatched.
func (e *Engine) Request(sess api.Session, seq *Sequencer, state *SubmissionState) (api.SubmitRequest, bool) {
	if state.SelectedChoiceID == "" || !sess.Ready() || state.CoolingDown(e.Now()) || !seq.HasItem() {
		return api.SubmitRequest{}, false
	}
	return api.SubmitRequest{
		SessionID: sess.ID,
		ItemID:    seq.Payload().Item.ID,
		StepID:    seq.ActiveStep().StepID,
		ChoiceID:  state.SelectedChoiceID,
		ServeID:   seq.ServeID(),
	}, true
}

// Apply interprets one grading response and applies it to the sequencer
// and submission state. Split from dispatch so an event-loop caller can
// run the network call elsewhere and mutate state only on its loop.
//
// On a graded response, a next_step signal advances the sequencer and
// clears the selection; it takes precedence over auto-advancing to a
// new item. A correct answer on the final step asks the caller to load
// the next item with the then-current filter.
func (e *Engine) Apply(res *api.SubmitResult, err error, seq *Sequencer, state *SubmissionState) Outcome {
	if err != nil {
		return e.applyError(e.Now(), err, state)
	}

	out := Outcome{Kind: OutcomeGraded, Correct: res.Correct}
	if res.Correct {
		state.LastResult = ResultCorrect
	} else {
		state.LastResult = ResultIncorrect
	}
	if res.Explanation != nil {
		state.Explanation = res.Explanation.HTML
		out.Explanation = res.Explanation.HTML
	}

	switch {
	case res.NextStep && seq.MultiStep():
		out.AdvancedStep = seq.AdvanceStep()
		state.SelectedChoiceID = ""
	case res.Correct && seq.OnLastStep():
		out.LoadNext = true
	}

	return out
}

// Submit grades the active step's selected choice in one call: build
// the request, dispatch it, apply the response.
func (e *Engine) Submit(ctx context.Context, sess api.Session, seq *Sequencer, state *SubmissionState) Outcome {
	req, ok := e.Request(sess, seq, state)
	if !ok {
		return Outcome{Kind: OutcomeSuppressed}
	}
	res, err := e.svc.SubmitAnswer(ctx, req, sess.CSRFToken)
	return e.Apply(res, err, seq, state)
}

func (e *Engine) applyError(now time.Time, err error, state *SubmissionState) Outcome {
	var rl *api.RateLimitError
	if errors.As(err, &rl) {
		until := CooldownUntil(now, rl)
		state.CooldownUntil = until
		e.log.Debug("submission rate limited", zap.Time("until", until))
		return Outcome{Kind: OutcomeRateLimited, CooldownUntil: until}
	}

	var sec *api.SecurityError
	if errors.As(err, &sec) {
		// Stale token: clear any prior explanation, leave step and
		// progress state untouched.
		state.Explanation = ""
		e.log.Warn("submission rejected", zap.String("code", sec.Code))
		return Outcome{Kind: OutcomeSecurityRejected, Err: err}
	}

	e.log.Debug("submission failed", zap.Error(err))
	return Outcome{Kind: OutcomeTransportError, Err: err}
}
