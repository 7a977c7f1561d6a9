package extractor

import (
	"context"
	"time"

	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/metrics"
)

type instrumented struct {
	next     Client
	provider string
	metrics  *metrics.Metrics
}

// Instrument logs every call to next and records it in m.
func Instrument(next Client, provider string, m *metrics.Metrics) Client {
	return &instrumented{next: next, provider: provider, metrics: m}
}

func (i *instrumented) Extract(ctx context.Context, history []domain.ConversationTurn, g *domain.Grounding) (domain.Extraction, error) {
	logger.ExternalServiceCall(i.provider, "Extract", "turns", len(history))
	start := time.Now()

	ex, err := i.next.Extract(ctx, history, g)

	outcome := string(ex.Kind)
	if err != nil {
		outcome = "error"
	}
	i.metrics.ObserveExtraction(i.provider, outcome, time.Since(start))
	logger.ExternalServiceResult(i.provider, "Extract", err, "outcome", outcome)
	return ex, err
}
