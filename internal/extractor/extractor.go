// Package extractor turns a chat history into either a free-text reply or a
// createRental booking intent by calling a function-calling language model.
package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/metrics"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Client extracts one reply from the conversation so far. Every failure to
// reach or use the model is an apperr extraction error.
type Client interface {
	Extract(ctx context.Context, history []domain.ConversationTurn, g *domain.Grounding) (domain.Extraction, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the provider endpoint (OpenRouter and friends for OpenAI).
	BaseURL string
	// Referrer and Title are sent as OpenRouter attribution headers when set.
	Referrer          string
	Title             string
	ShopName          string
	RequestsPerMinute int
	// Now supplies "today" for the prompt. Defaults to time.Now.
	Now func() time.Time
}

// New builds the configured provider, paced when RequestsPerMinute is set and
// instrumented with m (which may be nil).
func New(ctx context.Context, cfg Config, m *metrics.Metrics) (Client, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ShopName == "" {
		cfg.ShopName = DefaultShopName
	}

	var (
		c   Client
		err error
	)
	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case ProviderGemini:
		c, err = NewGemini(ctx, cfg)
	case ProviderOpenAI:
		c = NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerMinute > 0 {
		c = WithRateLimit(c, cfg.RequestsPerMinute)
	}
	return Instrument(c, provider, m), nil
}
