package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

var (
	// ErrCardNotFound indicates the card record was not found.
	ErrCardNotFound = errors.Wrap(errors.ErrNotFound, "card not found")

	// ErrDuplicateCard indicates a card with the same number is already stored.
	ErrDuplicateCard = errors.Wrap(errors.ErrConflict, "card number already stored")

	// ErrNoCardNumber indicates no card number could be extracted from the input text.
	ErrNoCardNumber = errors.Wrap(errors.ErrInvalidInput, "no card number found in text")
)
