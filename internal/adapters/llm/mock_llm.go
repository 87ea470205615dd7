package llm

import (
	"context"
	"fmt"

	"github.com/chatdesk/chatdesk/internal/domain"
)

// MockLLM is a canned reply generator for local development and tests.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) GenerateReply(
	ctx context.Context,
	history []*domain.Message,
	userText string,
) (string, error) {
	return fmt.Sprintf(
		"Thanks for reaching out! You asked: %q. Our support hours are Mon-Fri 9AM-6PM EST.",
		userText,
	), nil
}
