package extractor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
)

func newTestGemini(t *testing.T, status int, body string, seen *map[string]interface{}) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := NewGemini(context.Background(), Config{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		Model:    "test-model",
		ShopName: DefaultShopName,
		Now:      func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return c
}

func roles(t *testing.T, seen map[string]interface{}) []string {
	t.Helper()
	contents, ok := seen["contents"].([]interface{})
	require.True(t, ok, "request has no contents")
	out := make([]string, 0, len(contents))
	for _, c := range contents {
		out = append(out, c.(map[string]interface{})["role"].(string))
	}
	return out
}

func TestGeminiClient_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("Function call becomes an intent", func(t *testing.T) {
		var seen map[string]interface{}
		body := `{"candidates":[{"content":{"role":"model","parts":[{"functionCall":{"name":"createRental",
			"args":{"customer_name":"Lan","rental_date":"2024-05-01","camera_name":"sony","phone":"0901234567"}}}]},
			"finishReason":"STOP"}]}`
		c := newTestGemini(t, http.StatusOK, body, &seen)

		conversation := []domain.ConversationTurn{
			{Role: domain.RoleUser, Text: "Còn Sony không?"},
			{Role: domain.RoleAssistant, Text: "Sony A7III còn trống."},
			{Role: domain.RoleUser, Text: "Cho Lan thuê ngày 1/5"},
		}
		ex, err := c.Extract(ctx, conversation, &domain.Grounding{Cameras: []domain.Device{{ID: 1, Name: "Sony A7III"}}})
		require.NoError(t, err)
		assert.Equal(t, domain.ExtractionIntent, ex.Kind)
		require.NotNil(t, ex.Intent)
		assert.Equal(t, "Lan", ex.Intent.CustomerName)
		assert.Equal(t, "2024-05-01", ex.Intent.RentalDate)
		assert.Equal(t, "sony", ex.Intent.CameraName)
		assert.Equal(t, "0901234567", ex.Intent.Phone)

		// Exactly the turns handed in, assistant turns sent as "model"
		assert.Equal(t, []string{"user", "model", "user"}, roles(t, seen))
		assert.Contains(t, seen, "systemInstruction")
		assert.Len(t, seen["tools"], 1)
		raw, _ := json.Marshal(seen["systemInstruction"])
		assert.Contains(t, string(raw), "Sony A7III")
		assert.Contains(t, string(raw), "2024-05-01")
	})

	t.Run("Plain reply becomes text", func(t *testing.T) {
		body := `{"candidates":[{"content":{"role":"model","parts":[{"text":"Sony A7III hiện đang còn trống."}]},"finishReason":"STOP"}]}`
		c := newTestGemini(t, http.StatusOK, body, nil)

		ex, err := c.Extract(ctx, history, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.ExtractionText, ex.Kind)
		assert.Equal(t, "Sony A7III hiện đang còn trống.", ex.Text)
		assert.Nil(t, ex.Intent)
	})

	t.Run("Auth failure is an extraction error", func(t *testing.T) {
		body := `{"error":{"code":401,"message":"API key not valid. Please pass a valid API key.","status":"UNAUTHENTICATED"}}`
		c := newTestGemini(t, http.StatusUnauthorized, body, nil)

		_, err := c.Extract(ctx, history, nil)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindExtraction))
		assert.Contains(t, err.Error(), "API key not valid")
	})
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), Config{})
	assert.Error(t, err)
}
