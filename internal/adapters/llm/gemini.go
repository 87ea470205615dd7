package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"

	"github.com/chatdesk/chatdesk/internal/domain"
)

// GeminiClient implements domain.LLMClient against the Gemini API.
type GeminiClient struct {
	client        *genai.Client
	modelName     string
	maxMessageLen int
	historyWindow int
	timeout       time.Duration
}

type GeminiOptions struct {
	APIKey        string
	ModelName     string
	MaxMessageLen int
	HistoryWindow int
	Timeout       time.Duration
}

// Sampling bounds for support answers: short, fairly deterministic.
const (
	defaultModelName   = "gemini-2.5-flash"
	genTemperature     = float32(0.7)
	genMaxOutputTokens = int32(500)
)

// NewGeminiClient creates a Gemini-backed reply generator. A missing API
// key is a configuration error, reported before any call is made.
func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, newError(KindMissingCredential, "GEMINI_API_KEY is not configured", nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	modelName := opts.ModelName
	if modelName == "" {
		modelName = defaultModelName
	}

	return &GeminiClient{
		client:        client,
		modelName:     modelName,
		maxMessageLen: opts.MaxMessageLen,
		historyWindow: opts.HistoryWindow,
		timeout:       opts.Timeout,
	}, nil
}

// GenerateReply implements domain.LLMClient. Any failure comes back as an
// *Error from the fixed taxonomy with a display-ready message.
func (g *GeminiClient) GenerateReply(
	ctx context.Context,
	history []*domain.Message,
	userText string,
) (string, error) {
	// Re-checked here as a defensive invariant; the orchestrator enforces
	// the same ceiling upstream.
	if g.maxMessageLen > 0 && utf8.RuneCountInString(userText) > g.maxMessageLen {
		return "", newError(KindUnknown,
			fmt.Sprintf("Message exceeds maximum length of %d characters", g.maxMessageLen), nil)
	}

	contents := buildContents(history, userText, g.historyWindow)

	temp := genTemperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: genMaxOutputTokens,
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err := g.client.Models.GenerateContent(callCtx, g.modelName, contents, cfg)
	if err != nil {
		return "", classify(err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", newError(KindEmptyResponse, "Empty response from AI", nil)
	}

	return text, nil
}
