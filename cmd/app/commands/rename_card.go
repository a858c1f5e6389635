package commands

import (
	"context"
	"fmt"
	"log/slog"

	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// RunRenameCard updates the label of a stored card.
func RunRenameCard(
	ctx context.Context,
	useCase cardUseCase.CardUseCase,
	logger *slog.Logger,
	id int64,
	label string,
	io IOTuple,
) error {
	if err := customValidation.NotBlank.Validate(label); err != nil {
		return fmt.Errorf("invalid label: %w", err)
	}

	if err := useCase.Rename(ctx, id, label); err != nil {
		return fmt.Errorf("failed to rename card: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "Card %d renamed to %q.\n", id, label)

	logger.Info("card renamed",
		slog.Int64("card_id", id),
		slog.String("label", label),
	)

	return nil
}
