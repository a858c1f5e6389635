package usecase

import (
	"context"
	"log/slog"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/database"
	"github.com/allisson/cardvault/internal/extraction"
)

// cardUseCase implements CardUseCase.
type cardUseCase struct {
	txManager database.TxManager
	cardRepo  CardRepository
	codec     PayloadCodec
	extractor *extraction.Extractor
}

// NewCardUseCase creates a new CardUseCase.
func NewCardUseCase(
	txManager database.TxManager,
	cardRepo CardRepository,
	codec PayloadCodec,
	extractor *extraction.Extractor,
) CardUseCase {
	return &cardUseCase{
		txManager: txManager,
		cardRepo:  cardRepo,
		codec:     codec,
		extractor: extractor,
	}
}

// Add encrypts and stores a card payload.
//
// The duplicate check and the insert run in a single transaction so that two
// concurrent adds of the same number cannot both pass the check.
func (c *cardUseCase) Add(
	ctx context.Context,
	payload cardDomain.Payload,
	label string,
	force bool,
) (*cardDomain.Card, error) {
	payload.CardNumber = extraction.FormatCardNumber(payload.CardNumber)

	if label == "" {
		label = cardDomain.DefaultLabel(payload.CardNumber)
	}

	encoded, err := c.codec.Encode(payload)
	if err != nil {
		return nil, err
	}

	record := &cardDomain.Record{
		Label:            label,
		EncryptedPayload: encoded,
	}

	err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if !force {
			exists, err := c.exists(ctx, payload.CardNumber)
			if err != nil {
				return err
			}
			if exists {
				return cardDomain.ErrDuplicateCard
			}
		}
		return c.cardRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	return &cardDomain.Card{
		ID:        record.ID,
		Label:     record.Label,
		Payload:   payload,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Get retrieves and decrypts a single card by id.
func (c *cardUseCase) Get(ctx context.Context, id int64) (*cardDomain.Card, error) {
	record, err := c.cardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := c.codec.Decode(record.EncryptedPayload)
	if err != nil {
		return nil, err
	}

	return &cardDomain.Card{
		ID:        record.ID,
		Label:     record.Label,
		Payload:   payload,
		CreatedAt: record.CreatedAt,
	}, nil
}

// List retrieves card summaries without decrypting any payloads.
func (c *cardUseCase) List(ctx context.Context) ([]*cardDomain.Summary, error) {
	records, err := c.cardRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*cardDomain.Summary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, &cardDomain.Summary{
			ID:        record.ID,
			Label:     record.Label,
			CreatedAt: record.CreatedAt,
		})
	}
	return summaries, nil
}

// Exists reports whether the given card number is already stored.
func (c *cardUseCase) Exists(ctx context.Context, cardNumber string) (bool, error) {
	return c.exists(ctx, cardNumber)
}

// exists scans all stored records for a matching card number. Records that
// fail to decrypt (e.g. written under a rotated key) are skipped with a
// warning instead of failing the whole check.
func (c *cardUseCase) exists(ctx context.Context, cardNumber string) (bool, error) {
	records, err := c.cardRepo.List(ctx)
	if err != nil {
		return false, err
	}

	target := extraction.NormalizeCardNumber(cardNumber)
	for _, record := range records {
		payload, err := c.codec.Decode(record.EncryptedPayload)
		if err != nil {
			slog.WarnContext(ctx, "skipping undecryptable card record",
				"card_id", record.ID,
				"error", err,
			)
			continue
		}
		if extraction.NormalizeCardNumber(payload.CardNumber) == target {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes a card by id.
func (c *cardUseCase) Delete(ctx context.Context, id int64) error {
	return c.cardRepo.Delete(ctx, id)
}

// Rename updates the label of a card.
func (c *cardUseCase) Rename(ctx context.Context, id int64, label string) error {
	return c.cardRepo.Rename(ctx, id, label)
}

// Scan extracts card candidates from free-form text.
func (c *cardUseCase) Scan(ctx context.Context, text string) ([]*cardDomain.ScanResult, error) {
	candidates := c.extractor.ExtractAllCandidates(text)
	if len(candidates) == 0 {
		return nil, cardDomain.ErrNoCardNumber
	}

	results := make([]*cardDomain.ScanResult, 0, len(candidates))
	for _, candidate := range candidates {
		duplicate, err := c.exists(ctx, candidate.CardNumber)
		if err != nil {
			return nil, err
		}
		results = append(results, &cardDomain.ScanResult{
			CardNumber: candidate.CardNumber,
			CVV:        candidate.CVV,
			Expiry:     candidate.Expiry,
			LuhnValid:  extraction.ValidateLuhn(candidate.CardNumber),
			Duplicate:  duplicate,
		})
	}
	return results, nil
}
