package commands

import (
	"bytes"
	"crypto/rand"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardvault/internal/card/repository"
	cardService "github.com/allisson/cardvault/internal/card/service"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	"github.com/allisson/cardvault/internal/database"
	"github.com/allisson/cardvault/internal/extraction"
)

// setupUseCase builds a card use case backed by a temporary vault database.
func setupUseCase(t *testing.T) cardUseCase.CardUseCase {
	t.Helper()

	db, err := database.Connect(database.Config{Path: filepath.Join(t.TempDir(), "cards.db")})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	key := make([]byte, cryptoDomain.KeySize)
	_, err = rand.Read(key)
	require.NoError(t, err)

	codec, err := cardService.NewPayloadCodec(cryptoService.NewAEADManager(), key, cryptoDomain.AESGCM)
	require.NoError(t, err)

	return cardUseCase.NewCardUseCase(
		database.NewTxManager(db),
		repository.NewSQLiteCardRepository(db),
		codec,
		extraction.NewExtractor(extraction.StrictnessStrict),
	)
}

// testIO returns an IOTuple capturing output in a buffer.
func testIO() (IOTuple, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return IOTuple{
		Reader: strings.NewReader(""),
		Writer: buffer,
	}, buffer
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
