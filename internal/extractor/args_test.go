package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bomne-rental-backend/internal/apperr"
)

func TestIntentFromArgs(t *testing.T) {
	intent := intentFromArgs(map[string]interface{}{
		"customer_name": " Lan ",
		"phone":         float64(912345678),
		"camera_name":   "sony",
		"rental_date":   "2024-05-01",
		"duration":      nil,
	})

	assert.Equal(t, "Lan", intent.CustomerName)
	assert.Equal(t, "912345678", intent.Phone)
	assert.Equal(t, "sony", intent.CameraName)
	assert.Equal(t, "", intent.LensName)
	assert.Equal(t, "2024-05-01", intent.RentalDate)
	assert.Equal(t, "", intent.Duration)
}

func TestIntentFromJSON(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		intent, err := intentFromJSON(`{"customer_name":"Minh","lens_name":"24-70"}`)
		require.NoError(t, err)
		assert.Equal(t, "Minh", intent.CustomerName)
		assert.Equal(t, "24-70", intent.LensName)
	})

	t.Run("Empty arguments", func(t *testing.T) {
		intent, err := intentFromJSON("")
		require.NoError(t, err)
		assert.Equal(t, "", intent.CustomerName)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := intentFromJSON(`{"customer_name":`)
		assert.True(t, apperr.Is(err, apperr.KindExtraction))
	})
}
