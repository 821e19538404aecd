package api

import (
	"context"
	"errors"
	"sync"
)

// MockService is a deterministic Service for tests. Each call kind has
// a FIFO queue of canned results and a call log.
type MockService struct {
	mu sync.Mutex

	Sessions  []SessionResult
	Items     []ItemResult
	Submits   []SubmitOutcome
	Snapshots []ProgressResult
	Types     []string
	TypesErr  error

	PlaylistErr error

	// Call logs.
	SessionCalls  int
	ItemCalls     []string // itemType per NextItem call
	SubmitCalls   []SubmitRequest
	SubmitTokens  []string
	ProgressCalls int
	SetCalls      [][]string
	ClearCalls    int
}

// SessionResult is one canned CreateSession response.
type SessionResult struct {
	Session *Session
	Err     error
}

// ItemResult is one canned NextItem response.
type ItemResult struct {
	Payload *ServePayload
	Err     error
}

// SubmitOutcome is one canned SubmitAnswer response.
type SubmitOutcome struct {
	Result *SubmitResult
	Err    error
}

// ProgressResult is one canned Progress response.
type ProgressResult struct {
	Snapshot *ProgressSnapshot
	Err      error
}

var _ Service = (*MockService)(nil)

var errNoCanned = errors.New("mock: no canned response")

func (m *MockService) CreateSession(_ context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionCalls++
	if len(m.Sessions) == 0 {
		return nil, errNoCanned
	}
	r := m.Sessions[0]
	m.Sessions = m.Sessions[1:]
	return r.Session, r.Err
}

func (m *MockService) AvailableTypes(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Types, m.TypesErr
}

func (m *MockService) NextItem(_ context.Context, itemType string) (*ServePayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemCalls = append(m.ItemCalls, itemType)
	if len(m.Items) == 0 {
		return nil, errNoCanned
	}
	r := m.Items[0]
	if len(m.Items) > 1 {
		m.Items = m.Items[1:]
	}
	return r.Payload, r.Err
}

func (m *MockService) SubmitAnswer(_ context.Context, req SubmitRequest, csrfToken string) (*SubmitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmitCalls = append(m.SubmitCalls, req)
	m.SubmitTokens = append(m.SubmitTokens, csrfToken)
	if len(m.Submits) == 0 {
		return nil, errNoCanned
	}
	r := m.Submits[0]
	m.Submits = m.Submits[1:]
	return r.Result, r.Err
}

func (m *MockService) Progress(_ context.Context) (*ProgressSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProgressCalls++
	if len(m.Snapshots) == 0 {
		return nil, errNoCanned
	}
	r := m.Snapshots[0]
	if len(m.Snapshots) > 1 {
		m.Snapshots = m.Snapshots[1:]
	}
	return r.Snapshot, r.Err
}

func (m *MockService) SetPlaylist(_ context.Context, ids []string, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, ids)
	return m.PlaylistErr
}

func (m *MockService) ClearPlaylist(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	return m.PlaylistErr
}

// ItemCallCount returns the number of NextItem calls made.
func (m *MockService) ItemCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ItemCalls)
}

// SubmitCallCount returns the number of SubmitAnswer calls made.
func (m *MockService) SubmitCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SubmitCalls)
}
