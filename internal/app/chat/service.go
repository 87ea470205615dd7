// Package chat implements the message orchestration pipeline: input
// validation, session resolution, conversation persistence, and the
// reply-generation policy.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/chatdesk/chatdesk/internal/domain"
	"github.com/chatdesk/chatdesk/internal/observability"
	"github.com/chatdesk/chatdesk/internal/session"
)

// apologyPrefix is prepended to the generation failure's message when a
// reply cannot be produced; the result is persisted and returned as the
// AI turn so the chat surface never sees a hard failure.
const apologyPrefix = "I apologize, but I'm experiencing technical difficulties. "

type Service struct {
	llm           domain.LLMClient
	conversations domain.ConversationStore
	messages      domain.MessageStore
	maxMessageLen int
	now           func() time.Time
}

func NewService(
	llm domain.LLMClient,
	conversations domain.ConversationStore,
	messages domain.MessageStore,
	maxMessageLen int,
) *Service {
	return &Service{
		llm:           llm,
		conversations: conversations,
		messages:      messages,
		maxMessageLen: maxMessageLen,
		now:           time.Now,
	}
}

type HandleMessageInput struct {
	Text      string
	SessionID string // optional; replaced when absent or malformed
}

type HandleMessageOutput struct {
	Reply     string
	SessionID domain.SessionID
}

// HandleMessage runs one full exchange: persist the user turn, obtain a
// reply, persist the AI turn, touch the conversation. The resolved session
// identifier is always returned so the caller can persist it.
func (s *Service) HandleMessage(ctx context.Context, in HandleMessageInput) (*HandleMessageOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > s.maxMessageLen {
		return nil, domain.ErrMessageTooLong
	}

	sid := domain.SessionID(in.SessionID)
	if !session.IsValid(in.SessionID) {
		sid = session.New()
	}

	log := observability.LoggerFromContext(ctx).With("session_id", sid)

	conv, err := s.resolveConversation(ctx, sid)
	if err != nil {
		log.Error("failed to resolve conversation", "error", err)
		return nil, err
	}

	userAt := s.now()
	userMsg := &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: conv.ID,
		Sender:         domain.SenderUser,
		Text:           text,
		CreatedAt:      userAt,
	}
	if err := s.messages.AppendMessage(ctx, userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	history, err := s.messages.ListMessages(ctx, conv.ID)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, err
	}

	reply, genErr := s.llm.GenerateReply(ctx, history, text)
	if genErr != nil {
		// Generation failures are absorbed: the apology becomes the AI
		// reply and the request still succeeds.
		log.Error("reply generation failed", "error", genErr)
		reply = apologyPrefix + genErr.Error()
	}

	aiAt := s.now()
	if !aiAt.After(userAt) {
		aiAt = userAt.Add(time.Microsecond)
	}

	aiMsg := &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: conv.ID,
		Sender:         domain.SenderAI,
		Text:           reply,
		CreatedAt:      aiAt,
	}
	if err := s.messages.AppendMessage(ctx, aiMsg); err != nil {
		log.Error("failed to append ai message", "error", err)
		return nil, err
	}

	if err := s.conversations.TouchConversation(ctx, conv.ID, aiAt); err != nil {
		log.Error("failed to touch conversation", "error", err)
		return nil, err
	}

	log.Info("exchange completed", "conversation_id", conv.ID, "generation_failed", genErr != nil)

	return &HandleMessageOutput{
		Reply:     reply,
		SessionID: sid,
	}, nil
}

// resolveConversation finds the conversation for a session id, creating it
// on first contact. Two concurrent first messages may both observe
// "absent"; the store's uniqueness constraint decides the winner and the
// loser re-fetches.
func (s *Service) resolveConversation(ctx context.Context, sid domain.SessionID) (*domain.Conversation, error) {
	conv, err := s.conversations.GetConversationBySession(ctx, sid)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, domain.ErrConversationNotFound) {
		return nil, err
	}

	now := s.now()
	conv = &domain.Conversation{
		ID:        domain.ConversationID(uuid.NewString()),
		SessionID: sid,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.conversations.CreateConversation(ctx, conv)
	if err == nil {
		return conv, nil
	}
	if errors.Is(err, domain.ErrConversationExists) {
		return s.conversations.GetConversationBySession(ctx, sid)
	}
	return nil, err
}

// GetHistory returns the conversation for a session id and its messages in
// ascending timestamp order. A malformed identifier is reported distinctly
// from an unknown one. No mutation happens on this path.
func (s *Service) GetHistory(ctx context.Context, sessionID string) (*domain.Conversation, []*domain.Message, error) {
	if !session.IsValid(sessionID) {
		return nil, nil, domain.ErrInvalidSessionID
	}

	conv, err := s.conversations.GetConversationBySession(ctx, domain.SessionID(sessionID))
	if err != nil {
		return nil, nil, err
	}

	msgs, err := s.messages.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, nil, err
	}

	return conv, msgs, nil
}
