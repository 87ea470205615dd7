package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chatdesk/chatdesk/internal/domain"
)

// Store implements both storage ports on Firestore. Conversation documents
// are keyed by session id, so the document Create is what enforces the
// one-conversation-per-session constraint.
type Store struct {
	client *firestore.Client
}

func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) conversationsCol() *firestore.CollectionRef {
	return s.client.Collection("conversations")
}

func (s *Store) conversationDoc(sessionID domain.SessionID) *firestore.DocumentRef {
	return s.conversationsCol().Doc(string(sessionID))
}

func (s *Store) messagesCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.conversationDoc(sessionID).Collection("messages")
}

type conversationDoc struct {
	ConversationID string    `firestore:"conversation_id"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

type messageDoc struct {
	ConversationID string    `firestore:"conversation_id"`
	Sender         string    `firestore:"sender"`
	Text           string    `firestore:"text"`
	CreatedAt      time.Time `firestore:"created_at"`
}

func (s *Store) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	doc := conversationDoc{
		ConversationID: string(conv.ID),
		CreatedAt:      conv.CreatedAt,
		UpdatedAt:      conv.UpdatedAt,
	}

	_, err := s.conversationDoc(conv.SessionID).Create(ctx, doc)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domain.ErrConversationExists
		}
		return fmt.Errorf("firestore CreateConversation: %w", err)
	}
	return nil
}

func (s *Store) GetConversationBySession(ctx context.Context, sessionID domain.SessionID) (*domain.Conversation, error) {
	snap, err := s.conversationDoc(sessionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("firestore GetConversationBySession: %w", err)
	}

	var doc conversationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetConversationBySession decode: %w", err)
	}

	return &domain.Conversation{
		ID:        domain.ConversationID(doc.ConversationID),
		SessionID: sessionID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *Store) TouchConversation(ctx context.Context, id domain.ConversationID, at domain.Timestamp) error {
	iter := s.conversationsCol().Where("conversation_id", "==", string(id)).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return domain.ErrConversationNotFound
		}
		return fmt.Errorf("firestore TouchConversation: %w", err)
	}

	_, err = snap.Ref.Update(ctx, []firestore.Update{
		{Path: "updated_at", Value: at},
	})
	if err != nil {
		return fmt.Errorf("firestore TouchConversation update: %w", err)
	}
	return nil
}

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	iter := s.conversationsCol().Where("conversation_id", "==", string(msg.ConversationID)).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return domain.ErrConversationNotFound
		}
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}

	doc := messageDoc{
		ConversationID: string(msg.ConversationID),
		Sender:         string(msg.Sender),
		Text:           msg.Text,
		CreatedAt:      msg.CreatedAt,
	}

	_, err = snap.Ref.Collection("messages").Doc(string(msg.ID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendMessage set: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context, conversationID domain.ConversationID) ([]*domain.Message, error) {
	convIter := s.conversationsCol().Where("conversation_id", "==", string(conversationID)).Limit(1).Documents(ctx)
	defer convIter.Stop()

	convSnap, err := convIter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("firestore ListMessages: %w", err)
	}

	q := convSnap.Ref.Collection("messages").OrderBy("created_at", firestore.Asc)
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Message
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListMessages: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		out = append(out, &domain.Message{
			ID:             domain.MessageID(snap.Ref.ID),
			ConversationID: conversationID,
			Sender:         domain.Sender(doc.Sender),
			Text:           doc.Text,
			CreatedAt:      doc.CreatedAt,
		})
	}
	return out, nil
}
