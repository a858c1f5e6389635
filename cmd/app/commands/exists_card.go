package commands

import (
	"context"
	"fmt"
	"log/slog"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// RunExistsCard reports whether a card number is already stored in the vault.
// Only the masked number is echoed back.
func RunExistsCard(
	ctx context.Context,
	useCase cardUseCase.CardUseCase,
	logger *slog.Logger,
	cardNumber string,
	format string,
	io IOTuple,
) error {
	if err := customValidation.CardNumber.Validate(cardNumber); err != nil {
		return fmt.Errorf("invalid card number: %w", err)
	}

	exists, err := useCase.Exists(ctx, cardNumber)
	if err != nil {
		return fmt.Errorf("failed to check card: %w", err)
	}

	masked := cardDomain.MaskedNumber(cardNumber)

	if format == "json" {
		outputJSON(map[string]any{
			"card_number": masked,
			"exists":      exists,
		}, io.Writer)
	} else {
		if exists {
			_, _ = fmt.Fprintf(io.Writer, "%s is already stored.\n", masked)
		} else {
			_, _ = fmt.Fprintf(io.Writer, "%s is not stored.\n", masked)
		}
	}

	logger.Info("card existence checked", slog.Bool("exists", exists))

	return nil
}
