package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// RunAddCard encrypts and stores a card in the vault. An empty label gets a
// default derived from the last four digits. With force set, the duplicate
// check is bypassed.
func RunAddCard(
	ctx context.Context,
	useCase cardUseCase.CardUseCase,
	logger *slog.Logger,
	cardNumber string,
	cvv string,
	expiry string,
	label string,
	force bool,
	format string,
	io IOTuple,
) error {
	if err := customValidation.CardNumber.Validate(cardNumber); err != nil {
		return fmt.Errorf("invalid card number: %w", err)
	}

	payload := cardDomain.Payload{
		CardNumber: cardNumber,
		CVV:        cvv,
		Expiry:     expiry,
	}

	card, err := useCase.Add(ctx, payload, label, force)
	if err != nil {
		return fmt.Errorf("failed to add card: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]any{
			"id":          card.ID,
			"label":       card.Label,
			"card_number": cardDomain.MaskedNumber(card.Payload.CardNumber),
		}, io.Writer)
	} else {
		outputAddCardText(card, io.Writer)
	}

	logger.Info("card added",
		slog.Int64("card_id", card.ID),
		slog.String("label", card.Label),
	)

	return nil
}

// outputAddCardText prints the stored card in human-readable form. The full
// number is never echoed back.
func outputAddCardText(card *cardDomain.Card, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "Card stored successfully!")
	_, _ = fmt.Fprintf(writer, "ID: %d\n", card.ID)
	_, _ = fmt.Fprintf(writer, "Label: %s\n", card.Label)
	_, _ = fmt.Fprintf(writer, "Number: %s\n", cardDomain.MaskedNumber(card.Payload.CardNumber))
}
