package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/inventory"
	"bomne-rental-backend/internal/metrics"
)

type fakeExtractor struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
	result  domain.Extraction
	err     error
	seen    [][]domain.ConversationTurn
	mu      sync.Mutex
}

func (f *fakeExtractor) Extract(ctx context.Context, history []domain.ConversationTurn, g *domain.Grounding) (domain.Extraction, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.seen = append(f.seen, history)
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

type fakeSnapshot struct{}

func (fakeSnapshot) Grounding(ctx context.Context) (*domain.Grounding, error) {
	return &domain.Grounding{Cameras: []domain.Device{{ID: 11, Name: "Sony A7III"}}}, nil
}

type fakeBooking struct {
	calls atomic.Int32
	err   error
}

func (f *fakeBooking) ResolveBooking(intent domain.BookingIntent, cameras, lenses *inventory.Index, today time.Time) (*domain.Rental, error) {
	return &domain.Rental{CustomerName: intent.CustomerName}, nil
}

func (f *fakeBooking) Book(ctx context.Context, intent domain.BookingIntent, g *domain.Grounding) (*domain.Rental, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Rental{ID: 7, CustomerName: intent.CustomerName}, nil
}

func newTestSession(ex *fakeExtractor, booking *fakeBooking) *Session {
	if booking == nil {
		booking = &fakeBooking{}
	}
	return NewSession(Deps{Extractor: ex, Snapshot: fakeSnapshot{}, Booking: booking, Metrics: metrics.New()})
}

func TestSession_Greeting(t *testing.T) {
	ex := &fakeExtractor{result: domain.Extraction{Kind: domain.ExtractionText, Text: "Chào bạn!"}}
	s := newTestSession(ex, nil)

	assert.NotEmpty(t, s.ID())
	require.Len(t, s.History(), 1)
	assert.Equal(t, Greeting, s.History()[0].Text)

	reply, err := s.Submit(context.Background(), "xin chào")
	require.NoError(t, err)
	assert.Equal(t, "Chào bạn!", reply.Turn.Text)

	require.Len(t, ex.seen, 1)
	assert.Equal(t, []domain.ConversationTurn{{Role: domain.RoleUser, Text: "xin chào"}}, ex.seen[0])
	assert.Len(t, s.History(), 3)
}

func TestSession_BookingIntent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ex := &fakeExtractor{result: domain.Extraction{Kind: domain.ExtractionIntent, Intent: &domain.BookingIntent{CustomerName: "Lan", RentalDate: "2024-05-01"}}}
		booking := &fakeBooking{}
		s := newTestSession(ex, booking)

		reply, err := s.Submit(context.Background(), "Lan thuê Sony ngày 1/5")
		require.NoError(t, err)
		assert.Equal(t, "Đã tạo đơn thuê thành công cho khách hàng Lan!", reply.Turn.Text)
		assert.Equal(t, int32(7), reply.Rental.ID)
		assert.NoError(t, reply.Err)
		assert.Equal(t, int32(1), booking.calls.Load())
	})

	t.Run("Store failure is reported, not success", func(t *testing.T) {
		ex := &fakeExtractor{result: domain.Extraction{Kind: domain.ExtractionIntent, Intent: &domain.BookingIntent{CustomerName: "Lan"}}}
		booking := &fakeBooking{err: apperr.Persistence("book", errors.New("timeout"))}
		s := newTestSession(ex, booking)

		reply, err := s.Submit(context.Background(), "Lan thuê Sony")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(reply.Turn.Text, "Lỗi: "))
		assert.NotContains(t, reply.Turn.Text, "thành công")
		assert.Nil(t, reply.Rental)
		assert.True(t, apperr.Is(reply.Err, apperr.KindPersistence))
	})

	t.Run("Missing name", func(t *testing.T) {
		ex := &fakeExtractor{result: domain.Extraction{Kind: domain.ExtractionIntent, Intent: &domain.BookingIntent{}}}
		booking := &fakeBooking{err: apperr.MissingRequiredField("customer_name")}
		s := newTestSession(ex, booking)

		reply, err := s.Submit(context.Background(), "thuê Sony")
		require.NoError(t, err)
		assert.Equal(t, "Lỗi: thiếu tên khách hàng, chưa tạo đơn thuê", reply.Turn.Text)
	})
}

func TestSession_EmptyText(t *testing.T) {
	ex := &fakeExtractor{result: domain.Extraction{Kind: domain.ExtractionText}}
	s := newTestSession(ex, nil)

	reply, err := s.Submit(context.Background(), "???")
	require.NoError(t, err)
	assert.Equal(t, NotUnderstood, reply.Turn.Text)

	_, err = s.Submit(context.Background(), "   ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Len(t, s.History(), 3)
	assert.Equal(t, int32(1), ex.calls.Load())
}

func TestSession_ExtractionError(t *testing.T) {
	ex := &fakeExtractor{err: apperr.Extraction(errors.New("quota exceeded"))}
	s := newTestSession(ex, nil)
	before := s.History()

	reply, err := s.Submit(context.Background(), "còn máy Sony không?")
	require.NoError(t, err)
	assert.True(t, apperr.Is(reply.Err, apperr.KindExtraction))
	assert.Contains(t, reply.Turn.Text, "quota exceeded")

	after := s.History()
	require.Len(t, after, len(before)+2)
	assert.Equal(t, before, after[:len(before)])
	assert.Equal(t, domain.RoleUser, after[len(before)].Role)
	assert.Equal(t, reply.Turn, after[len(before)+1])
}

func TestSession_RejectsWhilePending(t *testing.T) {
	ex := &fakeExtractor{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  domain.Extraction{Kind: domain.ExtractionText, Text: "ok"},
	}
	s := newTestSession(ex, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.Submit(context.Background(), "first")
		assert.NoError(t, err)
	}()

	<-ex.entered
	assert.True(t, s.Pending())

	_, err := s.Submit(context.Background(), "second")
	assert.True(t, apperr.Is(err, apperr.KindBusy))

	close(ex.release)
	wg.Wait()

	assert.Equal(t, int32(1), ex.calls.Load())
	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, "first", h[1].Text)
	assert.Equal(t, "ok", h[2].Text)
	assert.False(t, s.Pending())
}

func TestSession_CloseDiscardsInFlightReply(t *testing.T) {
	ex := &fakeExtractor{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  domain.Extraction{Kind: domain.ExtractionText, Text: "late"},
	}
	s := newTestSession(ex, nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "hello")
		done <- err
	}()

	<-ex.entered
	s.Close()
	close(ex.release)

	err := <-done
	assert.True(t, apperr.Is(err, apperr.KindClosed))
	for _, turn := range s.History() {
		assert.NotEqual(t, "late", turn.Text)
	}

	_, err = s.Submit(context.Background(), "again")
	assert.True(t, apperr.Is(err, apperr.KindClosed))
}
