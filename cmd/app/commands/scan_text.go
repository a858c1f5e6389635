package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
)

// RunScanText extracts card candidates from free-form text and prints each
// with its checksum verdict and duplicate status. Nothing is stored; the
// caller decides which candidate to add.
func RunScanText(
	ctx context.Context,
	useCase cardUseCase.CardUseCase,
	logger *slog.Logger,
	text string,
	format string,
	io IOTuple,
) error {
	results, err := useCase.Scan(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to scan text: %w", err)
	}

	if format == "json" {
		entries := make([]map[string]any, 0, len(results))
		for _, result := range results {
			entries = append(entries, map[string]any{
				"card_number": result.CardNumber,
				"cvv":         result.CVV,
				"expiry":      result.Expiry,
				"luhn_valid":  result.LuhnValid,
				"duplicate":   result.Duplicate,
			})
		}
		outputJSON(entries, io.Writer)
	} else {
		outputScanText(results, io.Writer)
	}

	logger.Info("text scanned", slog.Int("candidates", len(results)))

	return nil
}

func outputScanText(results []*cardDomain.ScanResult, writer io.Writer) {
	for i, result := range results {
		_, _ = fmt.Fprintf(writer, "Candidate #%d\n", i+1)
		_, _ = fmt.Fprintf(writer, "Number: %s\n", result.CardNumber)
		if result.CVV != "" {
			_, _ = fmt.Fprintf(writer, "CVV: %s\n", result.CVV)
		}
		if result.Expiry != "" {
			_, _ = fmt.Fprintf(writer, "Expiry: %s\n", result.Expiry)
		}
		if !result.LuhnValid {
			_, _ = fmt.Fprintln(writer, "Warning: checksum verification failed")
		}
		if result.Duplicate {
			_, _ = fmt.Fprintln(writer, "Warning: already stored in the vault")
		}
		_, _ = fmt.Fprintln(writer)
	}
}
