// Package memory holds the in-memory storage backend used for local
// development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/chatdesk/chatdesk/internal/domain"
)

type ConversationStore struct {
	mu      sync.RWMutex
	byID    map[domain.ConversationID]*domain.Conversation
	bySession map[domain.SessionID]domain.ConversationID
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		byID:    make(map[domain.ConversationID]*domain.Conversation),
		bySession: make(map[domain.SessionID]domain.ConversationID),
	}
}

func (s *ConversationStore) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bySession[conv.SessionID]; exists {
		return domain.ErrConversationExists
	}

	cp := *conv
	s.byID[conv.ID] = &cp
	s.bySession[conv.SessionID] = conv.ID
	return nil
}

func (s *ConversationStore) GetConversationBySession(ctx context.Context, sessionID domain.SessionID) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySession[sessionID]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}

	cp := *s.byID[id]
	return &cp, nil
}

func (s *ConversationStore) TouchConversation(ctx context.Context, id domain.ConversationID, at domain.Timestamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.byID[id]
	if !ok {
		return domain.ErrConversationNotFound
	}

	conv.UpdatedAt = at
	return nil
}

type MessageStore struct {
	mu       sync.RWMutex
	messages map[domain.ConversationID][]*domain.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make(map[domain.ConversationID][]*domain.Message),
	}
}

func (s *MessageStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *msg
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], &cp)
	return nil
}

func (s *MessageStore) ListMessages(ctx context.Context, conversationID domain.ConversationID) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[conversationID]
	out := make([]*domain.Message, len(msgs))
	for i, m := range msgs {
		cp := *m
		out[i] = &cp
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
