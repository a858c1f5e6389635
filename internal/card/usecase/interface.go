// Package usecase defines interfaces and implementations for card vault use cases.
// Coordinates extraction, payload encryption, and persistence of card records.
package usecase

import (
	"context"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
)

// CardRepository defines the interface for card record persistence.
type CardRepository interface {
	Create(ctx context.Context, record *cardDomain.Record) error
	Get(ctx context.Context, id int64) (*cardDomain.Record, error)

	// List retrieves all card records ordered by id ascending.
	List(ctx context.Context) ([]*cardDomain.Record, error)
	Delete(ctx context.Context, id int64) error
	Rename(ctx context.Context, id int64, label string) error
}

// PayloadCodec encrypts card payloads for storage and decrypts stored records.
type PayloadCodec interface {
	Encode(payload cardDomain.Payload) (string, error)
	Decode(encoded string) (cardDomain.Payload, error)
}

// CardUseCase defines the interface for card vault operations.
type CardUseCase interface {
	// Add encrypts and stores a card payload. An empty label gets a default
	// derived from the last four digits of the card number. Unless force is
	// set, storing a number that is already in the vault fails with
	// ErrDuplicateCard.
	Add(ctx context.Context, payload cardDomain.Payload, label string, force bool) (*cardDomain.Card, error)

	// Get retrieves and decrypts a single card by id.
	Get(ctx context.Context, id int64) (*cardDomain.Card, error)

	// List retrieves card summaries without decrypting any payloads.
	List(ctx context.Context) ([]*cardDomain.Summary, error)

	// Exists reports whether the given card number is already stored.
	// Records that cannot be decrypted are skipped.
	Exists(ctx context.Context, cardNumber string) (bool, error)

	// Delete removes a card by id.
	Delete(ctx context.Context, id int64) error

	// Rename updates the label of a card.
	Rename(ctx context.Context, id int64, label string) error

	// Scan extracts card candidates from free-form text and annotates each
	// with its Luhn verdict and whether the number is already stored.
	// Returns ErrNoCardNumber when the text contains no card number.
	Scan(ctx context.Context, text string) ([]*cardDomain.ScanResult, error)
}
