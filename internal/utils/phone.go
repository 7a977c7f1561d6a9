package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used when no region is configured.
const DefaultPhoneRegion = "VN"

// NormalizePhone converts input to E.164 when it parses as a valid number for region.
// Anything else is returned trimmed, so a customer's note such as "zalo 09xx" is kept.
func NormalizePhone(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if region == "" {
		region = DefaultPhoneRegion
	}
	num, err := phonenumbers.Parse(trimmed, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return trimmed
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
