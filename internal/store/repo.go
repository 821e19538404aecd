package store

import (
	"context"
	"time"
)

// AnswerEventData captures one graded submission.
type AnswerEventData struct {
	SessionID string
	ItemID    string
	ItemType  string
	StepID    string
	ChoiceID  string
	ServeID   string
	Correct   bool
	TimeMs    int
}

// SessionEventData captures session lifecycle markers.
type SessionEventData struct {
	SessionID      string
	Action         string // "start" or "end"
	ItemsServed    int
	CorrectAnswers int
	DurationSecs   int
}

// AnswerRecord is one stored answer event.
type AnswerRecord struct {
	ID        string
	CreatedAt time.Time
	AnswerEventData
}

// EventRepo provides append and query access to the local event log.
// Appends are best effort for callers: a failed append must never fail
// the submission path.
type EventRepo interface {
	// AppendAnswerEvent records a graded submission.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// RecentAnswers returns the newest answer events, newest first.
	RecentAnswers(ctx context.Context, limit int) ([]AnswerRecord, error)

	// Purge deletes all recorded events.
	Purge(ctx context.Context) error
}
