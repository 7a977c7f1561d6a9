// Package assistant runs the booking chat: one Session per conversation,
// at most one extraction in flight per Session.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/extractor"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/metrics"
	"bomne-rental-backend/internal/service"
)

const (
	Greeting        = "Xin chào! Tôi là trợ lý AI của BOMNE. Tôi có thể giúp bạn kiểm tra thiết bị hoặc tạo đơn thuê mới."
	NotUnderstood   = "Xin lỗi, tôi không hiểu."
	connectFallback = "Không thể kết nối AI"
)

// Deps are the collaborators every session shares.
type Deps struct {
	Extractor extractor.Client
	Snapshot  service.SnapshotService
	Booking   service.BookingService
	Metrics   *metrics.Metrics
}

// Reply is the outcome of one accepted submission. Turn has already been
// appended to the history. Err is the failure Turn reports, if any.
type Reply struct {
	Turn   domain.ConversationTurn
	Rental *domain.Rental
	Err    error
}

type entry struct {
	turn domain.ConversationTurn
	// sent marks turns included in the history handed to the extractor.
	sent bool
}

type Session struct {
	id   string
	deps Deps

	mu      sync.Mutex
	turns   []entry
	pending bool
	closed  bool
}

// NewSession starts a conversation with the greeting shown but not sent.
func NewSession(deps Deps) *Session {
	return &Session{
		id:    uuid.NewString(),
		deps:  deps,
		turns: []entry{{turn: domain.ConversationTurn{Role: domain.RoleAssistant, Text: Greeting}}},
	}
}

func (s *Session) ID() string {
	return s.id
}

// History returns a copy of every turn, greeting included.
func (s *Session) History() []domain.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ConversationTurn, 0, len(s.turns))
	for _, e := range s.turns {
		out = append(out, e.turn)
	}
	return out
}

// Pending reports whether an extraction is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Submit appends text as a user turn, runs one extraction and appends exactly
// one assistant turn. Blank text, a pending extraction or a closed session
// reject the submission and leave the history untouched.
func (s *Session) Submit(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, apperr.Validation("text", "message is empty")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Reply{}, apperr.New(apperr.KindClosed, "session closed")
	}
	if s.pending {
		s.mu.Unlock()
		s.deps.Metrics.ObserveBusy()
		return Reply{}, apperr.New(apperr.KindBusy, "previous message still being processed")
	}
	s.pending = true
	s.turns = append(s.turns, entry{turn: domain.ConversationTurn{Role: domain.RoleUser, Text: text}, sent: true})
	history := s.sentHistory()
	s.mu.Unlock()

	reply := s.process(ctx, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if s.closed {
		logger.WithSession(s.id).Info("Discarding reply for closed session")
		return Reply{}, apperr.New(apperr.KindClosed, "session closed")
	}
	s.turns = append(s.turns, entry{turn: reply.Turn, sent: true})
	return reply, nil
}

func (s *Session) sentHistory() []domain.ConversationTurn {
	out := make([]domain.ConversationTurn, 0, len(s.turns))
	for _, e := range s.turns {
		if e.sent {
			out = append(out, e.turn)
		}
	}
	return out
}

func (s *Session) process(ctx context.Context, history []domain.ConversationTurn) Reply {
	g, err := s.deps.Snapshot.Grounding(ctx)
	if err != nil {
		logger.WithSession(s.id).ErrorContext(ctx, "Loading shop snapshot failed", "error", err)
		return failure(err)
	}

	ex, err := s.deps.Extractor.Extract(ctx, history, g)
	if err != nil {
		logger.WithSession(s.id).ErrorContext(ctx, "Extraction failed", "error", err)
		return failure(err)
	}

	if ex.Kind == domain.ExtractionIntent && ex.Intent != nil {
		rt, err := s.deps.Booking.Book(ctx, *ex.Intent, g)
		if err != nil {
			logger.WithSession(s.id).WarnContext(ctx, "Booking not created", "error", err)
			return failure(err)
		}
		logger.WithSession(s.id).InfoContext(ctx, "Booking created", "rentalID", rt.ID)
		return Reply{Turn: assistantTurn(fmt.Sprintf("Đã tạo đơn thuê thành công cho khách hàng %s!", rt.CustomerName)), Rental: rt}
	}

	if ex.Text == "" {
		return Reply{Turn: assistantTurn(NotUnderstood)}
	}
	return Reply{Turn: assistantTurn(ex.Text)}
}

// Close tears the session down. A reply still in flight is discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func assistantTurn(text string) domain.ConversationTurn {
	return domain.ConversationTurn{Role: domain.RoleAssistant, Text: text}
}

func failure(err error) Reply {
	return Reply{Turn: assistantTurn("Lỗi: " + describe(err)), Err: err}
}

var fieldNames = map[string]string{
	"customer_name": "tên khách hàng",
	"rental_date":   "ngày thuê",
	"return_date":   "ngày trả",
}

func describe(err error) string {
	field := apperr.FieldOf(err)
	if name, ok := fieldNames[field]; ok {
		field = name
	}
	switch apperr.GetKind(err) {
	case apperr.KindMissingRequiredField:
		return "thiếu " + field + ", chưa tạo đơn thuê"
	case apperr.KindValidation:
		return field + " không hợp lệ, chưa tạo đơn thuê"
	case apperr.KindPersistence:
		return "không lưu được đơn thuê (" + err.Error() + ")"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return connectFallback
}
