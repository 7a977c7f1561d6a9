package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
)

// intentFromArgs reads createRental arguments. Models sometimes send numbers
// for the phone, so every value is printed rather than type-asserted.
func intentFromArgs(args map[string]interface{}) *domain.BookingIntent {
	get := func(key string) string {
		v, ok := args[key]
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		if f, ok := v.(float64); ok && f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return &domain.BookingIntent{
		CustomerName: get("customer_name"),
		Phone:        get("phone"),
		CameraName:   get("camera_name"),
		LensName:     get("lens_name"),
		RentalDate:   get("rental_date"),
		ReturnDate:   get("return_date"),
		Duration:     get("duration"),
	}
}

// intentFromJSON reads createRental arguments delivered as a JSON object string.
func intentFromJSON(raw string) (*domain.BookingIntent, error) {
	args := map[string]interface{}{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return nil, apperr.Extraction(fmt.Errorf("malformed %s arguments: %w", CreateRentalTool, err))
		}
	}
	return intentFromArgs(args), nil
}

func textExtraction(text string) domain.Extraction {
	return domain.Extraction{Kind: domain.ExtractionText, Text: strings.TrimSpace(text)}
}

func intentExtraction(intent *domain.BookingIntent) domain.Extraction {
	return domain.Extraction{Kind: domain.ExtractionIntent, Intent: intent}
}
