package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServePayload = `{
	"version": "1.0",
	"session_id": "s_abc",
	"item": {"id": "i_1", "type": "mcq", "content": {"html": "Find \\(m\\)"}},
	"choices": [{"id": "A", "text": "1"}, {"id": "B", "text": "2"}],
	"serve": {"id": "sv1", "seed": "seed", "choice_order": ["B", "A"], "watermark": "wm"}
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, 5*time.Second, nil)
	require.NoError(t, err)
	return c, srv
}

func TestCreateSessionDecodesCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/session", r.URL.Path)
		w.Write([]byte(`{"session_id": "s_1", "csrf_token": "tok"}`))
	}))

	sess, err := c.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s_1", sess.ID)
	assert.Equal(t, "tok", sess.CSRFToken)
	assert.True(t, sess.Ready())
}

func TestNextItemSendsTypeFilter(t *testing.T) {
	var gotType string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.URL.Query().Get("type")
		w.Write([]byte(testServePayload))
	}))

	payload, err := c.NextItem(context.Background(), "algebra")
	require.NoError(t, err)
	assert.Equal(t, "algebra", gotType)
	assert.Equal(t, "i_1", payload.Item.ID)
	assert.Equal(t, "sv1", payload.Serve.ID)
	assert.Equal(t, []string{"B", "A"}, payload.Serve.ChoiceOrder)
}

func TestNextItemRejectsContractViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing item id", `{"version": "1.0", "item": {"type": "mcq"}, "serve": {}}`},
		{"not json", `<html>gateway error</html>`},
		{"wrong major version", `{"version": "2.0", "item": {"id": "i_1"}, "serve": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			_, err := c.NextItem(context.Background(), "")
			var decodeErr *DecodeError
			assert.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestSubmitAnswerAttachesCSRFHeader(t *testing.T) {
	var gotToken string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-CSRF-Token")
		w.Write([]byte(`{"correct": true, "explanation": {"html": "ok"}}`))
	}))

	res, err := c.SubmitAnswer(context.Background(), SubmitRequest{
		SessionID: "s_1", ItemID: "i_1", StepID: "step_1", ChoiceID: "A", ServeID: "sv1",
	}, "tok")
	require.NoError(t, err)
	assert.Equal(t, "tok", gotToken)
	assert.True(t, res.Correct)
	require.NotNil(t, res.Explanation)
	assert.Equal(t, "ok", res.Explanation.HTML)
}

func TestSubmitAnswerRateLimitResetTakesPrecedence(t *testing.T) {
	reset := time.Now().Add(10 * time.Second).Unix()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.SubmitAnswer(context.Background(), SubmitRequest{}, "tok")
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, time.Unix(reset, 0), rl.ResetAt)
	assert.Equal(t, 3*time.Second, rl.RetryAfter)
}

func TestSubmitAnswerRetryAfterOnly(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.SubmitAnswer(context.Background(), SubmitRequest{}, "tok")
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.True(t, rl.ResetAt.IsZero())
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
}

func TestSubmitAnswerSecurityRejection(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code": "csrf_failure"}`))
	}))

	_, err := c.SubmitAnswer(context.Background(), SubmitRequest{}, "stale")
	var sec *SecurityError
	require.ErrorAs(t, err, &sec)
	assert.Equal(t, "csrf_failure", sec.Code)
}

func TestSubmitAnswerPlainForbiddenIsStatusError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": "not allowed"}`))
	}))

	_, err := c.SubmitAnswer(context.Background(), SubmitRequest{}, "tok")
	var sec *SecurityError
	assert.False(t, errors.As(err, &sec))
	var st *StatusError
	require.ErrorAs(t, err, &st)
	assert.Equal(t, http.StatusForbidden, st.StatusCode)
}

func TestProgressDecodesSnapshot(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"overall": {"attempts": 10, "correct": 7, "accuracy": 0.7},
			"by_type": {"algebra": {"attempts": 4, "correct": 2, "accuracy": 0.5}}
		}`))
	}))

	snap, err := c.Progress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, snap.Overall.Attempts)
	assert.InDelta(t, 0.5, snap.ByType["algebra"].Accuracy, 1e-9)
}

func TestPlaylistCalls(t *testing.T) {
	var method, path, token string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, token = r.Method, r.URL.Path, r.Header.Get("X-CSRF-Token")
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.SetPlaylist(context.Background(), []string{"i_1", "i_2"}, "tok"))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/api/playlist", path)
	assert.Equal(t, "tok", token)

	require.NoError(t, c.ClearPlaylist(context.Background(), "tok"))
	assert.Equal(t, http.MethodDelete, method)
}
