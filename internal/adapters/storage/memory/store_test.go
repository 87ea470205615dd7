package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatdesk/chatdesk/internal/adapters/storage/memory"
	"github.com/chatdesk/chatdesk/internal/domain"
)

func TestCreateConversationEnforcesSessionUniqueness(t *testing.T) {
	ctx := context.Background()
	store := memory.NewConversationStore()

	conv := &domain.Conversation{
		ID:        "conv-1",
		SessionID: "6ba7b814-9dad-41d1-80b4-00c04fd430c8",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.CreateConversation(ctx, conv))

	dup := &domain.Conversation{ID: "conv-2", SessionID: conv.SessionID}
	err := store.CreateConversation(ctx, dup)
	require.ErrorIs(t, err, domain.ErrConversationExists)

	got, err := store.GetConversationBySession(ctx, conv.SessionID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)
}

func TestGetConversationBySessionNotFound(t *testing.T) {
	store := memory.NewConversationStore()
	_, err := store.GetConversationBySession(context.Background(), "unknown")
	require.ErrorIs(t, err, domain.ErrConversationNotFound)
}

func TestTouchConversation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewConversationStore()

	created := time.Now()
	conv := &domain.Conversation{ID: "conv-1", SessionID: "sess", CreatedAt: created, UpdatedAt: created}
	require.NoError(t, store.CreateConversation(ctx, conv))

	later := created.Add(time.Minute)
	require.NoError(t, store.TouchConversation(ctx, conv.ID, later))

	got, err := store.GetConversationBySession(ctx, conv.SessionID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(later))

	require.ErrorIs(t, store.TouchConversation(ctx, "missing", later), domain.ErrConversationNotFound)
}

func TestListMessagesOrdering(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMessageStore()

	base := time.Now()
	// Appended out of order on purpose.
	for _, off := range []int{2, 0, 1} {
		msg := &domain.Message{
			ID:             domain.MessageID(time.Duration(off).String()),
			ConversationID: "conv-1",
			Sender:         domain.SenderUser,
			Text:           "msg",
			CreatedAt:      base.Add(time.Duration(off) * time.Second),
		}
		require.NoError(t, store.AppendMessage(ctx, msg))
	}

	msgs, err := store.ListMessages(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i-1].CreatedAt.Before(msgs[i].CreatedAt))
	}
}

func TestListMessagesEmptyConversation(t *testing.T) {
	store := memory.NewMessageStore()
	msgs, err := store.ListMessages(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
