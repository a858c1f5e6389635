// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/extraction"
)

var (
	// cvvRegex matches a 3 or 4 digit CVV code.
	cvvRegex = regexp.MustCompile(`^[0-9]{3,4}$`)

	// expiryRegex matches an expiry date in MM/YY format.
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// CardNumber validates that a string contains exactly 16 digits once
// whitespace and hyphen separators are stripped. It deliberately does not
// apply the Luhn checksum: a failed checksum is a warning surfaced to the
// caller, never a reason to reject storage.
var CardNumber = validation.NewStringRuleWithError(
	func(s string) bool {
		normalized := extraction.NormalizeCardNumber(s)
		if len(normalized) != 16 {
			return false
		}
		for i := 0; i < len(normalized); i++ {
			if normalized[i] < '0' || normalized[i] > '9' {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_card_number", "must contain exactly 16 digits"),
)

// CVV validates that a string is a 3 or 4 digit code.
var CVV = validation.NewStringRuleWithError(
	func(s string) bool { return cvvRegex.MatchString(s) },
	validation.NewError("validation_cvv", "must be a 3 or 4 digit code"),
)

// Expiry validates that a string is an expiry date in MM/YY format.
var Expiry = validation.NewStringRuleWithError(
	func(s string) bool { return expiryRegex.MatchString(s) },
	validation.NewError("validation_expiry", "must be in MM/YY format"),
)
