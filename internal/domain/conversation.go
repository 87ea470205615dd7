package domain

// Conversation groups the messages exchanged under one session identifier.
// The SessionID is the external handle (unique per conversation); the ID is
// the storage key.
type Conversation struct {
	ID        ConversationID
	SessionID SessionID
	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// Message is a single turn in a conversation. Messages are immutable once
// created; their CreatedAt order is authoritative for display and for
// prompt construction.
type Message struct {
	ID             MessageID
	ConversationID ConversationID
	Sender         Sender
	Text           string
	CreatedAt      Timestamp
}
