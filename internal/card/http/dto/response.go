package dto

import (
	"time"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
)

// CardResponse represents a decrypted card in API responses.
type CardResponse struct {
	ID         int64     `json:"id"`
	Label      string    `json:"label"`
	CardNumber string    `json:"card_number"`
	CVV        string    `json:"cvv,omitempty"`
	Expiry     string    `json:"expiry,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// MapCardToResponse converts a domain card to an API response.
func MapCardToResponse(card *cardDomain.Card) CardResponse {
	return CardResponse{
		ID:         card.ID,
		Label:      card.Label,
		CardNumber: card.Payload.CardNumber,
		CVV:        card.Payload.CVV,
		Expiry:     card.Payload.Expiry,
		CreatedAt:  card.CreatedAt,
	}
}

// CardSummaryResponse represents a card listing entry. Payload fields are
// never included: listing does not decrypt anything.
type CardSummaryResponse struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCardsResponse represents the card listing.
type ListCardsResponse struct {
	Cards []CardSummaryResponse `json:"cards"`
}

// MapSummariesToResponse converts domain card summaries to a listing response.
func MapSummariesToResponse(summaries []*cardDomain.Summary) ListCardsResponse {
	cards := make([]CardSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		cards = append(cards, CardSummaryResponse{
			ID:        summary.ID,
			Label:     summary.Label,
			CreatedAt: summary.CreatedAt,
		})
	}
	return ListCardsResponse{Cards: cards}
}

// ScanResultResponse represents one card candidate found in scanned text.
type ScanResultResponse struct {
	CardNumber string `json:"card_number"`
	CVV        string `json:"cvv,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	LuhnValid  bool   `json:"luhn_valid"`
	Duplicate  bool   `json:"duplicate"`
}

// ScanResponse represents the result of scanning a text snippet.
type ScanResponse struct {
	Results []ScanResultResponse `json:"results"`
}

// MapScanResultsToResponse converts domain scan results to an API response.
func MapScanResultsToResponse(results []*cardDomain.ScanResult) ScanResponse {
	mapped := make([]ScanResultResponse, 0, len(results))
	for _, result := range results {
		mapped = append(mapped, ScanResultResponse{
			CardNumber: result.CardNumber,
			CVV:        result.CVV,
			Expiry:     result.Expiry,
			LuhnValid:  result.LuhnValid,
			Duplicate:  result.Duplicate,
		})
	}
	return ScanResponse{Results: mapped}
}

// ExistsCardResponse represents the result of a duplicate check.
type ExistsCardResponse struct {
	Exists bool `json:"exists"`
}
