package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chatdesk/chatdesk/internal/app/chat"
	"github.com/chatdesk/chatdesk/internal/domain"
	"github.com/chatdesk/chatdesk/internal/observability"
)

type Server struct {
	svc *chat.Service
}

func NewServer(svc *chat.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /messages → POST: send a message, get the reply
	mux.HandleFunc("/messages", s.handleMessages)

	// /conversations/{sessionId} → GET: full ordered history
	mux.HandleFunc("/conversations/", s.handleConversationWithID)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID, withRecover)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type postMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type postMessageResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

type messageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Sender         string    `json:"sender"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
}

type historyResponse struct {
	Messages  []messageResponse `json:"messages"`
	SessionID string            `json:"sessionId"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Message is required and must be a string")
		return
	}

	out, err := s.svc.HandleMessage(r.Context(), chat.HandleMessageInput{
		Text:      req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			badRequest(w, "Message cannot be empty")
		case errors.Is(err, domain.ErrMessageTooLong):
			badRequest(w, "Message exceeds maximum length")
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, postMessageResponse{
		Reply:     out.Reply,
		SessionID: string(out.SessionID),
	})
}

// /conversations/{sessionId}
func (s *Server) handleConversationWithID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	sessionID := strings.TrimPrefix(r.URL.Path, "/conversations/")
	if sessionID == "" || strings.Contains(sessionID, "/") {
		http.NotFound(w, r)
		return
	}

	conv, msgs, err := s.svc.GetHistory(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSessionID):
			badRequest(w, "Invalid session ID format")
		case errors.Is(err, domain.ErrConversationNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Conversation not found"})
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Messages:  toMessagesResponse(msgs),
		SessionID: string(conv.SessionID),
	})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResponse{
			ID:             string(m.ID),
			ConversationID: string(m.ConversationID),
			Sender:         string(m.Sender),
			Text:           m.Text,
			Timestamp:      m.CreatedAt,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// internalError logs the cause and answers with a generic body; internal
// detail never reaches the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", fmt.Sprintf("%v", err),
	)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "Internal server error. Please try again later.",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
