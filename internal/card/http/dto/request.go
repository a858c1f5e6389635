// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cardvault/internal/validation"
)

// AddCardRequest contains the parameters for storing a card.
type AddCardRequest struct {
	CardNumber string `json:"card_number"`
	CVV        string `json:"cvv,omitempty"`
	Expiry     string `json:"expiry,omitempty"` // MM/YY
	Label      string `json:"label,omitempty"`  // Defaults to "card-" + last four digits
	Force      bool   `json:"force,omitempty"`  // Store even when the number is already in the vault
}

// Validate checks if the add card request is valid.
func (r *AddCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardNumber,
			validation.Required,
			customValidation.NotBlank,
			customValidation.CardNumber,
		),
		validation.Field(&r.CVV,
			validation.When(r.CVV != "", customValidation.CVV),
		),
		validation.Field(&r.Expiry,
			validation.When(r.Expiry != "", customValidation.Expiry),
		),
		validation.Field(&r.Label,
			validation.Length(0, 255),
		),
	)
}

// ScanRequest contains the free-form text to extract card candidates from.
type ScanRequest struct {
	Text string `json:"text"`
}

// Validate checks if the scan request is valid.
func (r *ScanRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// RenameCardRequest contains the new label for a stored card.
type RenameCardRequest struct {
	Label string `json:"label"`
}

// Validate checks if the rename card request is valid.
func (r *RenameCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Label,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// ExistsCardRequest contains the card number to check for duplicates.
type ExistsCardRequest struct {
	CardNumber string `json:"card_number"`
}

// Validate checks if the exists card request is valid.
func (r *ExistsCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardNumber,
			validation.Required,
			customValidation.NotBlank,
			customValidation.CardNumber,
		),
	)
}
