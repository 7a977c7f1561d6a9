package extractor

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
)

type rateLimited struct {
	next    Client
	limiter *rate.Limiter
}

// WithRateLimit paces calls to next at perMinute requests per minute. Waiting
// honours ctx; a cancelled wait is an extraction error and no call is made.
func WithRateLimit(next Client, perMinute int) Client {
	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *rateLimited) Extract(ctx context.Context, history []domain.ConversationTurn, g *domain.Grounding) (domain.Extraction, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.Extraction{}, apperr.Extraction(err)
	}
	return r.next.Extract(ctx, history, g)
}
