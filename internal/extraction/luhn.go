package extraction

import "strings"

// NormalizeCardNumber strips whitespace and hyphen separators from a card number.
// Used for digit-for-digit comparison between formatted variants of the same number.
func NormalizeCardNumber(cardNumber string) string {
	var b strings.Builder
	b.Grow(len(cardNumber))
	for _, r := range cardNumber {
		switch r {
		case ' ', '\t', '\n', '\r', '-':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber strips non-digit characters and regroups the number into four
// groups of four digits separated by single spaces. Input that does not contain
// exactly 16 digits is returned unchanged, signalling an unformattable value
// without raising.
func FormatCardNumber(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) != 16 {
		return raw
	}
	return digits[0:4] + " " + digits[4:8] + " " + digits[8:12] + " " + digits[12:16]
}

// ValidateLuhn reports whether cardNumber passes the Luhn checksum.
//
// Non-digit characters are stripped before validation; anything other than
// exactly 16 remaining digits fails. A false verdict is a warning for the
// caller, not an error.
func ValidateLuhn(cardNumber string) bool {
	digits := onlyDigits(cardNumber)
	if len(digits) != 16 {
		return false
	}

	sum := 0
	// Iterate from the rightmost digit, doubling every second digit.
	for i := 0; i < len(digits); i++ {
		digit := int(digits[len(digits)-1-i] - '0')
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}

	return sum%10 == 0
}

// onlyDigits returns s with every non-digit byte removed.
func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
