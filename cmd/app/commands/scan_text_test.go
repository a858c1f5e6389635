package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunScanText(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()

	t.Run("full-candidate", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, buffer := testIO()

		err := RunScanText(ctx, useCase, logger, "card 4276 3801 2345 6787 exp 12/25 cvv 123", "text", io)
		require.NoError(t, err)
		require.Contains(t, buffer.String(), "4276 3801 2345 6787")
		require.Contains(t, buffer.String(), "CVV: 123")
		require.Contains(t, buffer.String(), "Expiry: 12/25")
		require.NotContains(t, buffer.String(), "checksum verification failed")
	})

	t.Run("invalid-checksum-warning", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, buffer := testIO()

		err := RunScanText(ctx, useCase, logger, "4276 3801 2345 6788", "text", io)
		require.NoError(t, err)
		require.Contains(t, buffer.String(), "checksum verification failed")
	})

	t.Run("duplicate-warning", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, _ := testIO()
		require.NoError(t, RunAddCard(ctx, useCase, logger, "4276380123456787", "", "", "", false, "text", io))

		io, buffer := testIO()
		err := RunScanText(ctx, useCase, logger, "4276 3801 2345 6787", "text", io)
		require.NoError(t, err)
		require.Contains(t, buffer.String(), "already stored in the vault")
	})

	t.Run("no-card-number", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, _ := testIO()

		err := RunScanText(ctx, useCase, logger, "hello world", "text", io)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no card number")
	})
}
