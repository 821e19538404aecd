package hints

import (
	"context"
	"sync"
)

// MockResponse is one canned hint for the MockProvider.
type MockResponse struct {
	Hint *Hint
	Err  error
}

// MockProvider is a deterministic Provider for tests. Responses come
// back in FIFO order and every request is recorded.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Hint(_ context.Context, req Request) (*Hint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrUnavailable{}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Hint, resp.Err
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Hint calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
