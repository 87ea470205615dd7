package domain

import "time"

type SessionID string
type ConversationID string
type MessageID string

// Sender is a closed enum: every message is authored by exactly one of
// these two parties.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Valid reports whether s is one of the two known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAI
}

type Timestamp = time.Time
