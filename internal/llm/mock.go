package llm

import (
	"context"
)

// MockProvider is a scripted Provider for tests and dry runs. It returns
// Responses in order (repeating the last one) and records every request.
type MockProvider struct {
	Responses []string
	Err       error
	Requests  []GenerateRequest
	PingErr   error
}

// NewMockProvider creates a mock that answers with the given responses.
func NewMockProvider(responses ...string) *MockProvider {
	return &MockProvider{Responses: responses}
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Provider: m.Name(), Err: err}
	}

	content := ""
	if n := len(m.Responses); n > 0 {
		idx := len(m.Requests) - 1
		if idx >= n {
			idx = n - 1
		}
		content = m.Responses[idx]
	}
	return &GenerateResponse{Content: content, Model: "mock", FinishReason: "stop"}, nil
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingErr
}
