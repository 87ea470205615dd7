package domain

import "context"

// LLMClient defines how the core application obtains a reply from the
// language model. History is the full ordered conversation so far,
// including the just-persisted user turn; windowing is the client's
// concern.
type LLMClient interface {
	GenerateReply(ctx context.Context, history []*Message, userText string) (string, error)
}

// ConversationStore defines conversation persistence.
//
// CreateConversation must enforce uniqueness on the session identifier and
// return ErrConversationExists when a conversation for the same session id
// was created concurrently.
type ConversationStore interface {
	CreateConversation(ctx context.Context, conv *Conversation) error
	GetConversationBySession(ctx context.Context, sessionID SessionID) (*Conversation, error)
	TouchConversation(ctx context.Context, id ConversationID, at Timestamp) error
}

// MessageStore defines message persistence. ListMessages returns all
// messages of a conversation in ascending CreatedAt order.
type MessageStore interface {
	AppendMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, conversationID ConversationID) ([]*Message, error)
}
