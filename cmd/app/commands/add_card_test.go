package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunAddCard(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()

	t.Run("success", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, buffer := testIO()

		err := RunAddCard(ctx, useCase, logger, "4276 3801 2345 6787", "123", "12/25", "", false, "text", io)
		require.NoError(t, err)
		require.Contains(t, buffer.String(), "Card stored successfully!")
		require.Contains(t, buffer.String(), "card-6787")
		require.Contains(t, buffer.String(), "**** **** **** 6787")
		require.NotContains(t, buffer.String(), "4276 3801 2345 6787")
	})

	t.Run("json-format", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, buffer := testIO()

		err := RunAddCard(ctx, useCase, logger, "4276380123456787", "", "", "work", false, "json", io)
		require.NoError(t, err)
		require.Contains(t, buffer.String(), `"label": "work"`)
		require.Contains(t, buffer.String(), `"card_number": "**** **** **** 6787"`)
	})

	t.Run("invalid-card-number", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, _ := testIO()

		err := RunAddCard(ctx, useCase, logger, "1234", "", "", "", false, "text", io)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid card number")
	})

	t.Run("duplicate", func(t *testing.T) {
		useCase := setupUseCase(t)
		io, _ := testIO()

		err := RunAddCard(ctx, useCase, logger, "4276380123456787", "", "", "", false, "text", io)
		require.NoError(t, err)

		err = RunAddCard(ctx, useCase, logger, "4276 3801 2345 6787", "", "", "", false, "text", io)
		require.Error(t, err)

		err = RunAddCard(ctx, useCase, logger, "4276 3801 2345 6787", "", "", "", true, "text", io)
		require.NoError(t, err)
	})
}
