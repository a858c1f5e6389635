// Package repository implements card record persistence on SQLite.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// SQLiteCardRepository implements card persistence for SQLite databases.
type SQLiteCardRepository struct {
	db *sql.DB
}

// NewSQLiteCardRepository creates a new SQLiteCardRepository.
func NewSQLiteCardRepository(db *sql.DB) *SQLiteCardRepository {
	return &SQLiteCardRepository{db: db}
}

// Create inserts a new card record. The generated id and creation time are
// written back into the record.
func (r *SQLiteCardRepository) Create(ctx context.Context, record *cardDomain.Record) error {
	querier := database.GetTx(ctx, r.db)

	record.CreatedAt = time.Now().UTC()

	query := `INSERT INTO cards (label, encrypted_payload, created_at) VALUES (?, ?, ?)`

	result, err := querier.ExecContext(ctx, query, record.Label, record.EncryptedPayload, record.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create card")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read card id")
	}
	record.ID = id

	return nil
}

// Get retrieves a card record by its id.
func (r *SQLiteCardRepository) Get(ctx context.Context, id int64) (*cardDomain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, label, encrypted_payload, created_at FROM cards WHERE id = ?`

	var record cardDomain.Record
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Label,
		&record.EncryptedPayload,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cardDomain.ErrCardNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get card")
	}

	return &record, nil
}

// List retrieves all card records ordered by id.
func (r *SQLiteCardRepository) List(ctx context.Context) ([]*cardDomain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, label, encrypted_payload, created_at FROM cards ORDER BY id`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cards")
	}
	defer rows.Close()

	var records []*cardDomain.Record
	for rows.Next() {
		var record cardDomain.Record
		if err := rows.Scan(&record.ID, &record.Label, &record.EncryptedPayload, &record.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan card row")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate card rows")
	}

	return records, nil
}

// Delete removes a card record by its id.
func (r *SQLiteCardRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM cards WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete card")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return cardDomain.ErrCardNotFound
	}

	return nil
}

// Rename updates the label of a card record.
func (r *SQLiteCardRepository) Rename(ctx context.Context, id int64, label string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE cards SET label = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, label, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to rename card")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return cardDomain.ErrCardNotFound
	}

	return nil
}
