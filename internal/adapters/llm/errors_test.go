package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"wrapped deadline", fmt.Errorf("generate: %w", context.DeadlineExceeded), KindTimeout},
		{"invalid key marker", errors.New("rpc error: API_KEY_INVALID"), KindInvalidCredential},
		{"401 status", errors.New("server returned 401"), KindInvalidCredential},
		{"unauthenticated", errors.New("code = UNAUTHENTICATED desc = bad key"), KindInvalidCredential},
		{"quota marker", errors.New("exceeded your current quota"), KindQuotaExceeded},
		{"429 status", errors.New("server returned 429"), KindRateLimited},
		{"rate limit marker", errors.New("rate limit hit"), KindRateLimited},
		{"timeout marker", errors.New("net/http: request timeout"), KindTimeout},
		{"anything else", errors.New("connection reset by peer"), KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			assert.Equal(t, tc.want, got.Kind)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestClassifyPassesThroughTypedErrors(t *testing.T) {
	orig := newError(KindEmptyResponse, "Empty response from AI", nil)
	got := classify(fmt.Errorf("generate: %w", orig))
	assert.Same(t, orig, got)
}

func TestNewGeminiClientRequiresCredential(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiOptions{})
	require.Error(t, err)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindMissingCredential, genErr.Kind)
}
