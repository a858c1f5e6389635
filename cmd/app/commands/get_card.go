package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
)

// RunGetCard retrieves and decrypts a single card by id and prints the full
// payload. This is the only command that reveals the plain card number.
func RunGetCard(
	ctx context.Context,
	useCase cardUseCase.CardUseCase,
	logger *slog.Logger,
	id int64,
	format string,
	io IOTuple,
) error {
	card, err := useCase.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]any{
			"id":          card.ID,
			"label":       card.Label,
			"card_number": card.Payload.CardNumber,
			"cvv":         card.Payload.CVV,
			"expiry":      card.Payload.Expiry,
			"created_at":  card.CreatedAt.Format(time.RFC3339),
		}, io.Writer)
	} else {
		outputGetCardText(card, io.Writer)
	}

	logger.Info("card retrieved", slog.Int64("card_id", card.ID))

	return nil
}

func outputGetCardText(card *cardDomain.Card, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "ID: %d\n", card.ID)
	_, _ = fmt.Fprintf(writer, "Label: %s\n", card.Label)
	_, _ = fmt.Fprintf(writer, "Number: %s\n", card.Payload.CardNumber)
	if card.Payload.CVV != "" {
		_, _ = fmt.Fprintf(writer, "CVV: %s\n", card.Payload.CVV)
	}
	if card.Payload.Expiry != "" {
		_, _ = fmt.Fprintf(writer, "Expiry: %s\n", card.Payload.Expiry)
	}
	_, _ = fmt.Fprintf(writer, "Created: %s\n", card.CreatedAt.Format(time.RFC3339))
}
