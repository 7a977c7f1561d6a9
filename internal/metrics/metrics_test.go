package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveExtraction("gemini", "intent", 120*time.Millisecond)
	m.ObserveExtraction("gemini", "error", time.Second)
	m.ObserveBooking("created")
	m.ObserveResolution("camera", true)
	m.ObserveResolution("lens", false)
	m.ObserveBusy()
	m.ObserveBusy()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.extractions.WithLabelValues("gemini", "intent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookings.WithLabelValues("created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.resolutions.WithLabelValues("lens", "unresolved")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.busyRejections))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "assistant_extractions_total")
	assert.Contains(t, string(body), "assistant_busy_rejections_total 2")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveExtraction("openai", "text", time.Millisecond)
		m.ObserveBooking("failed")
		m.ObserveResolution("camera", false)
		m.ObserveBusy()
	})
}
