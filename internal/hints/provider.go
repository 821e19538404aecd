package hints

import "context"

// Provider produces a short hint for a step the learner answered
// incorrectly. Hints never touch grading: the server stays the sole
// authority on correctness, and no hint request carries the answer key
// (the client doesn't have it).
type Provider interface {
	// Hint generates guidance for the given step.
	Hint(ctx context.Context, req Request) (*Hint, error)

	// ModelID returns the model identifier this provider uses.
	ModelID() string
}

// Request describes the step to hint on.
type Request struct {
	// Question is the step prompt, rendered to plain text.
	Question string

	// Choices are the displayed answer options, in display order.
	Choices []string

	// Chosen is the option the learner picked.
	Chosen string
}

// Hint is the generated guidance.
type Hint struct {
	Text string
}
