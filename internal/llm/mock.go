package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned answer.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockScript answers a request once the queue is empty.
type MockScript func(req Request) MockResponse

// MockProvider answers from a FIFO queue, then from Script when set. With
// neither it reports ErrProviderUnavailable, which sends lesson sources to
// their fallback. Every request is recorded in Calls; a cancelled context
// fails without consuming a response.
type MockProvider struct {
	Script MockScript

	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider returns a MockProvider queued with responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	var (
		resp MockResponse
		ok   bool
	)
	if len(m.responses) > 0 {
		resp, m.responses, ok = m.responses[0], m.responses[1:], true
	}
	script := m.Script
	m.mu.Unlock()

	switch {
	case ok:
	case script != nil:
		resp = script(req)
	default:
		return nil, &ErrProviderUnavailable{}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      m.ModelID(),
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse queues another response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
