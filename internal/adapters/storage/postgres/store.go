// Package postgres holds the durable storage backend. One Store implements
// both the conversation and message ports over a shared pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chatdesk/chatdesk/internal/domain"
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO conversations (id, session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`,
		string(conv.ID), string(conv.SessionID), conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrConversationExists
		}
		return fmt.Errorf("create conversation: %w", err)
	}
	return nil
}

func (s *Store) GetConversationBySession(ctx context.Context, sessionID domain.SessionID) (*domain.Conversation, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, session_id, created_at, updated_at
		FROM conversations
		WHERE session_id = $1`,
		string(sessionID),
	)

	var conv domain.Conversation
	err := row.Scan(&conv.ID, &conv.SessionID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &conv, nil
}

func (s *Store) TouchConversation(ctx context.Context, id domain.ConversationID, at domain.Timestamp) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE conversations SET updated_at = $2 WHERE id = $1`,
		string(id), at,
	)
	if err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, sender, text, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		string(msg.ID), string(msg.ConversationID), string(msg.Sender), msg.Text, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context, conversationID domain.ConversationID) ([]*domain.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, conversation_id, sender, text, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC`,
		string(conversationID),
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}
