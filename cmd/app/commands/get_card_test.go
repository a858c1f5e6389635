package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunGetCard(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()

	t.Run("success", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, _ := testIO()
		require.NoError(t, RunAddCard(ctx, useCase, logger, "4276380123456787", "123", "12/25", "", false, "text", io))

		io, buffer := testIO()
		err := RunGetCard(ctx, useCase, logger, 1, "text", io)
		require.NoError(t, err)
		require.Contains(t, buffer.String(), "4276 3801 2345 6787")
		require.Contains(t, buffer.String(), "CVV: 123")
		require.Contains(t, buffer.String(), "Expiry: 12/25")
	})

	t.Run("not-found", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, _ := testIO()

		err := RunGetCard(ctx, useCase, logger, 42, "text", io)
		require.Error(t, err)
		require.Contains(t, err.Error(), "card not found")
	})
}
