package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/chatdesk/chatdesk/internal/domain"
)

func makeHistory(n int) []*domain.Message {
	msgs := make([]*domain.Message, 0, n)
	for i := 0; i < n; i++ {
		sender := domain.SenderUser
		if i%2 == 1 {
			sender = domain.SenderAI
		}
		msgs = append(msgs, &domain.Message{
			Sender: sender,
			Text:   fmt.Sprintf("turn %d", i),
		})
	}
	return msgs
}

func TestBuildContentsTruncatesAtWindow(t *testing.T) {
	const window = 10

	for _, total := range []int{0, 3, 10, 11, 50} {
		history := makeHistory(total)
		contents := buildContents(history, "current question", window)

		wantHistory := total
		if wantHistory > window {
			wantHistory = window
		}
		// 2 scripted preamble turns + windowed history + 1 live turn.
		require.Len(t, contents, 2+wantHistory+1, "total=%d", total)
	}
}

func TestBuildContentsKeepsMostRecentTurns(t *testing.T) {
	history := makeHistory(15)
	contents := buildContents(history, "current question", 10)

	// First windowed turn right after the preamble must be turn 5.
	first := contents[2]
	require.Len(t, first.Parts, 1)
	assert.Equal(t, "turn 5", first.Parts[0].Text)

	last := contents[len(contents)-1]
	assert.Equal(t, "current question", last.Parts[0].Text)
	assert.Equal(t, genai.RoleUser, last.Role)
}

func TestBuildContentsRoleMapping(t *testing.T) {
	history := []*domain.Message{
		{Sender: domain.SenderUser, Text: "hello"},
		{Sender: domain.SenderAI, Text: "hi there"},
	}
	contents := buildContents(history, "follow-up", 10)

	require.Len(t, contents, 5)
	assert.Equal(t, genai.RoleUser, contents[0].Role, "preamble knowledge turn")
	assert.Equal(t, genai.RoleModel, contents[1].Role, "preamble acknowledgment turn")
	assert.Equal(t, genai.RoleUser, contents[2].Role)
	assert.Equal(t, genai.RoleModel, contents[3].Role)
	assert.Equal(t, genai.RoleUser, contents[4].Role)
}

func TestWindowHistoryNoTruncationNeeded(t *testing.T) {
	history := makeHistory(4)
	assert.Equal(t, history, windowHistory(history, 10))
	assert.Equal(t, history, windowHistory(history, 0))
}
