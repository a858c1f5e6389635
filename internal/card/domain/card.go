package domain

import (
	"time"

	"github.com/allisson/cardvault/internal/extraction"
)

// Payload holds the sensitive card fields that are encrypted at rest.
// CVV and Expiry are empty strings when unknown.
type Payload struct {
	CardNumber string `json:"card_number"`
	CVV        string `json:"cvv"`
	Expiry     string `json:"expiry"`
}

// Card represents a stored card record. Payload is only populated after
// the encrypted payload has been decrypted.
type Card struct {
	ID        int64
	Label     string
	Payload   Payload
	CreatedAt time.Time
}

// Record is the persisted form of a card: the payload is an opaque
// base64 string produced by the payload codec.
type Record struct {
	ID               int64
	Label            string
	EncryptedPayload string
	CreatedAt        time.Time
}

// ScanResult describes one card candidate found in a scanned text snippet.
type ScanResult struct {
	CardNumber string
	CVV        string
	Expiry     string
	LuhnValid  bool
	Duplicate  bool
}

// Summary is a card listing entry without any decrypted payload data.
type Summary struct {
	ID        int64
	Label     string
	CreatedAt time.Time
}

// DefaultLabel builds the label assigned to a card stored without an
// explicit one: "card-" followed by the last four digits of the number.
func DefaultLabel(cardNumber string) string {
	digits := extraction.NormalizeCardNumber(cardNumber)
	if len(digits) < 4 {
		return "card-" + digits
	}
	return "card-" + digits[len(digits)-4:]
}

// MaskedNumber returns the card number with all but the last four digits
// replaced by asterisks, preserving the grouped display format.
func MaskedNumber(cardNumber string) string {
	digits := extraction.NormalizeCardNumber(cardNumber)
	if len(digits) <= 4 {
		return digits
	}
	masked := make([]byte, 0, len(digits)+3)
	for i := 0; i < len(digits); i++ {
		if i > 0 && i%4 == 0 && len(digits) == 16 {
			masked = append(masked, ' ')
		}
		if i < len(digits)-4 {
			masked = append(masked, '*')
		} else {
			masked = append(masked, digits[i])
		}
	}
	return string(masked)
}
