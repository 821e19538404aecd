package api

// Wire types for the practice service. Shapes follow the serve contract
// version 1.0; optional fields stay pointers or zero values so absent
// server data is distinguishable from empty data.

// Session holds the credentials returned by create-session. The CSRF
// token must accompany every mutating request; an empty token means the
// session is not usable for submissions.
type Session struct {
	ID        string `json:"session_id"`
	CSRFToken string `json:"csrf_token"`
}

// Ready reports whether the session can issue mutating requests.
func (s Session) Ready() bool {
	return s.CSRFToken != ""
}

// Markup wraps a fragment of display markup. Inline math uses \( ... \)
// delimiters and is resolved by a mathtext.Renderer at display time.
type Markup struct {
	HTML string `json:"html"`
}

// MediaAsset is a signed, time-limited resource reference. The URL is
// valid for TTLSeconds from serve time; the client never refreshes or
// caches it past the owning item's lifetime.
type MediaAsset struct {
	ID         string `json:"id"`
	SignedURL  string `json:"signed_url"`
	TTLSeconds int    `json:"ttl_s"`
	Alt        string `json:"alt"`
	LongAlt    string `json:"long_alt,omitempty"`
}

// Choice is one answer option. Immutable once received.
type Choice struct {
	ID    string       `json:"id"`
	Text  string       `json:"text"`
	Media []MediaAsset `json:"media,omitempty"`
}

// StepServe carries the per-step serving decisions made server-side.
// ChoiceOrder is a permutation of choice ids; display must follow it
// exactly and never re-derive an order locally.
type StepServe struct {
	ChoiceOrder []string `json:"choice_order"`
}

// Step is one gradable sub-question of an item.
type Step struct {
	StepID  string     `json:"step_id"`
	Prompt  Markup     `json:"prompt"`
	Choices []Choice   `json:"choices"`
	Serve   *StepServe `json:"serve,omitempty"`
}

// Item is one unit of practice content. Steps is empty for single-step
// items, in which case the item's top-level content and the payload's
// top-level choices form an implicit single step.
type Item struct {
	ID      string       `json:"id"`
	Kind    string       `json:"type"`
	Content Markup       `json:"content"`
	Media   []MediaAsset `json:"media,omitempty"`
	Steps   []Step       `json:"steps,omitempty"`
}

// ServeInfo identifies the serving instance of an item. ID is echoed
// back on submission so the server can bind the answer to this exact
// rendering (choice order, assets).
type ServeInfo struct {
	ID          string   `json:"id"`
	Seed        string   `json:"seed"`
	ChoiceOrder []string `json:"choice_order"`
	Watermark   string   `json:"watermark"`
}

// ServePayload is the full response of fetch-next-item.
type ServePayload struct {
	Version   string    `json:"version"`
	SessionID string    `json:"session_id"`
	Item      Item      `json:"item"`
	Choices   []Choice  `json:"choices,omitempty"`
	Serve     ServeInfo `json:"serve"`
}

// SubmitRequest is the body of submit-answer.
type SubmitRequest struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"item_id"`
	StepID    string `json:"step_id"`
	ChoiceID  string `json:"choice_id"`
	ServeID   string `json:"serve_id,omitempty"`
}

// SubmitResult is a graded response. NextStep signals that the item has
// a further step the client should advance to.
type SubmitResult struct {
	Correct     bool    `json:"correct"`
	Explanation *Markup `json:"explanation,omitempty"`
	NextStep    bool    `json:"next_step,omitempty"`
}

// AccuracyStats is one aggregate accuracy bucket.
type AccuracyStats struct {
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// ProgressSnapshot is the server's aggregate view of the session.
// Replaced wholesale on each poll, never merged field by field.
type ProgressSnapshot struct {
	Overall AccuracyStats            `json:"overall"`
	ByType  map[string]AccuracyStats `json:"by_type"`
}
