// Package extraction turns raw OCR or typed text into candidate card fields.
//
// Extraction is a pure-function pipeline: text in, structured candidate or empty
// result out. No operation here raises on malformed or empty input; absence is
// always an explicit empty string. OCR confusion between CVV, expiry year, and
// trailing card digits is a known failure mode the design accepts and surfaces to
// the human caller for confirmation rather than silently trusting.
package extraction

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

// Strictness selects the CVV matching pattern.
type Strictness string

// Supported CVV strictness values.
const (
	// StrictnessStrict matches standalone runs of exactly 3 digits.
	StrictnessStrict Strictness = "strict"
	// StrictnessLoose also accepts standalone runs of 4 digits.
	StrictnessLoose Strictness = "loose"
)

// ParseStrictness converts a strictness string to a Strictness value.
func ParseStrictness(s string) (Strictness, error) {
	switch s {
	case "strict":
		return StrictnessStrict, nil
	case "loose":
		return StrictnessLoose, nil
	default:
		return "", apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("invalid cvv strictness: %s (valid options: strict, loose)", s),
		)
	}
}

// Candidate is a provisional, unvalidated extraction result awaiting human
// confirmation. Empty fields mean the value could not be extracted. RawText is
// retained only for diagnostics and must never be stored long-term.
type Candidate struct {
	CardNumber string
	CVV        string
	Expiry     string
	RawText    string
}

var (
	// digitRunRe matches maximal contiguous digit runs.
	digitRunRe = regexp.MustCompile(`[0-9]+`)

	// groupedCardRe matches four groups of 4 digits optionally separated by
	// spaces or hyphens, for OCR output where separators survived.
	groupedCardRe = regexp.MustCompile(`\b[0-9]{4}[ \-]?[0-9]{4}[ \-]?[0-9]{4}[ \-]?[0-9]{4}\b`)

	// expiryRe matches a two-digit month in range 01-12, an optional separator,
	// and a two-digit year.
	expiryRe = regexp.MustCompile(`\b(0[1-9]|1[0-2])[/\- ]?([0-9]{2})\b`)

	cvvStrictRe = regexp.MustCompile(`\b[0-9]{3}\b`)
	cvvLooseRe  = regexp.MustCompile(`\b[0-9]{3,4}\b`)
)

// Extractor extracts card fields from unstructured text.
type Extractor struct {
	strictness Strictness
}

// NewExtractor creates an Extractor with the given CVV strictness.
func NewExtractor(strictness Strictness) *Extractor {
	return &Extractor{strictness: strictness}
}

// ExtractCardNumber returns the first card number found in text, formatted in
// groups of four digits, or "" when no candidate exists.
//
// The search first strips all whitespace and hyphen separators and looks for a
// contiguous run of exactly 16 digits bounded by non-digits or string
// boundaries. When OCR noise glues other digits onto the number, the stripped
// run exceeds 16 digits and the search falls back to the original text with a
// separator-tolerant grouped pattern.
func (e *Extractor) ExtractCardNumber(text string) string {
	clean := NormalizeCardNumber(text)

	for _, run := range digitRunRe.FindAllString(clean, -1) {
		if len(run) == 16 {
			return FormatCardNumber(run)
		}
	}

	if match := groupedCardRe.FindString(text); match != "" {
		return FormatCardNumber(match)
	}

	return ""
}

// ExtractAllCardNumbers returns every card number found in text in order of
// appearance, each formatted in groups of four digits. Used when a single image
// may contain multiple cards. Returns nil when nothing matches.
func (e *Extractor) ExtractAllCardNumbers(text string) []string {
	clean := NormalizeCardNumber(text)

	var numbers []string
	for _, run := range digitRunRe.FindAllString(clean, -1) {
		if len(run) == 16 {
			numbers = append(numbers, FormatCardNumber(run))
		}
	}
	if numbers != nil {
		return numbers
	}

	for _, match := range groupedCardRe.FindAllString(text, -1) {
		numbers = append(numbers, FormatCardNumber(match))
	}
	return numbers
}

// ExtractExpiry returns the first expiry date found in text as "MM/YY", or ""
// when no match exists.
func (e *Extractor) ExtractExpiry(text string) string {
	match := expiryRe.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1] + "/" + match[2]
}

// ExtractCVV returns the first standalone 3-digit (strict) or 3-4 digit (loose)
// run in text, or "" when no qualifying run exists.
//
// When cardNumber is non-empty its digits are removed from the search text
// first, both as a contiguous run and as 4-digit chunks so the removal survives
// OCR-inserted separators. Expiry-shaped substrings are stripped as well to
// avoid misreading year digits as a CVV.
func (e *Extractor) ExtractCVV(text, cardNumber string) string {
	if cardNumber != "" {
		normalized := NormalizeCardNumber(cardNumber)
		text = strings.ReplaceAll(text, normalized, "")
		for i := 0; i+4 <= len(normalized); i += 4 {
			text = strings.ReplaceAll(text, normalized[i:i+4], "")
		}
	}

	text = expiryRe.ReplaceAllString(text, "")

	re := cvvStrictRe
	if e.strictness == StrictnessLoose {
		re = cvvLooseRe
	}
	return re.FindString(text)
}

// ExtractCandidate runs the full pipeline on text and returns a best-effort
// candidate with whatever fields could be extracted.
func (e *Extractor) ExtractCandidate(text string) Candidate {
	cardNumber := e.ExtractCardNumber(text)
	return Candidate{
		CardNumber: cardNumber,
		CVV:        e.ExtractCVV(text, cardNumber),
		Expiry:     e.ExtractExpiry(text),
		RawText:    text,
	}
}

// ExtractAllCandidates returns one candidate per card number found in text,
// preserving order of appearance. The expiry and CVV heuristics cannot
// attribute their matches to a specific card when several appear in one image,
// so the shared values are attached to every candidate and left to the human
// caller to confirm. Returns nil when no card number is found.
func (e *Extractor) ExtractAllCandidates(text string) []Candidate {
	numbers := e.ExtractAllCardNumbers(text)
	if numbers == nil {
		return nil
	}

	// Remove every detected number before searching for a CVV.
	cvvText := text
	for _, number := range numbers {
		normalized := NormalizeCardNumber(number)
		cvvText = strings.ReplaceAll(cvvText, normalized, "")
		for i := 0; i+4 <= len(normalized); i += 4 {
			cvvText = strings.ReplaceAll(cvvText, normalized[i:i+4], "")
		}
	}

	expiry := e.ExtractExpiry(text)
	cvv := e.ExtractCVV(cvvText, "")

	candidates := make([]Candidate, 0, len(numbers))
	for _, number := range numbers {
		candidates = append(candidates, Candidate{
			CardNumber: number,
			CVV:        cvv,
			Expiry:     expiry,
			RawText:    text,
		})
	}
	return candidates
}
