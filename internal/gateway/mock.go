package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/resumecoach/server/internal/domain"
)

// MockGateway is a deterministic stand-in for the model backend, used for
// local development without an API key.
type MockGateway struct{}

func NewMock() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Complete(_ context.Context, msgs []domain.ChatMessage) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("empty message list")
	}

	system := ""
	last := ""
	for _, msg := range msgs {
		if msg.Role == domain.RoleSystem && system == "" {
			system = msg.Text
		}
		if msg.Role == domain.RoleUser {
			last = msg.Text
		}
	}

	if strings.Contains(system, "expert resume analyst") {
		return "### Resume Improvement Suggestions\nTighten the summary.\n\n" +
			"### ATS Score Simulation\nEstimated score: 78/100.\n\n" +
			"### Career Coaching Insights\nLean into backend depth.", nil
	}

	return fmt.Sprintf("Mock reply to: %s", firstLine(last)), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
