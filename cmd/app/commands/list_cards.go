package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
)

// RunListCards prints the vault contents as id/label summaries. Payloads are
// never decrypted for listings.
func RunListCards(
	ctx context.Context,
	useCase cardUseCase.CardUseCase,
	logger *slog.Logger,
	format string,
	io IOTuple,
) error {
	summaries, err := useCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	if format == "json" {
		entries := make([]map[string]any, 0, len(summaries))
		for _, summary := range summaries {
			entries = append(entries, map[string]any{
				"id":         summary.ID,
				"label":      summary.Label,
				"created_at": summary.CreatedAt.Format(time.RFC3339),
			})
		}
		outputJSON(entries, io.Writer)
	} else {
		if len(summaries) == 0 {
			_, _ = fmt.Fprintln(io.Writer, "The vault is empty.")
		}
		for _, summary := range summaries {
			_, _ = fmt.Fprintf(io.Writer, "%d\t%s\t%s\n",
				summary.ID, summary.Label, summary.CreatedAt.Format(time.RFC3339))
		}
	}

	logger.Info("cards listed", slog.Int("count", len(summaries)))

	return nil
}
