package commands

import (
	"context"
	"fmt"
	"log/slog"

	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
)

// RunDeleteCard removes a card from the vault by id.
func RunDeleteCard(
	ctx context.Context,
	useCase cardUseCase.CardUseCase,
	logger *slog.Logger,
	id int64,
	io IOTuple,
) error {
	if err := useCase.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "Card %d deleted.\n", id)

	logger.Info("card deleted", slog.Int64("card_id", id))

	return nil
}
