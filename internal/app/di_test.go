package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardvault/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ServerHost:          "127.0.0.1",
		ServerPort:          0,
		DatabasePath:        filepath.Join(dir, "cards.db"),
		KeyPath:             filepath.Join(dir, ".encryption_key"),
		EncryptionAlgorithm: "aes-gcm",
		CVVStrictness:       "strict",
		LogLevel:            "error",
	}
}

func TestContainer(t *testing.T) {
	t.Run("Config returns the provided configuration", func(t *testing.T) {
		cfg := testConfig(t)
		container := NewContainer(cfg)
		assert.Same(t, cfg, container.Config())
	})

	t.Run("Logger is created once", func(t *testing.T) {
		container := NewContainer(testConfig(t))
		logger := container.Logger()
		require.NotNil(t, logger)
		assert.Same(t, logger, container.Logger())
	})

	t.Run("DB opens and migrates the vault database", func(t *testing.T) {
		container := NewContainer(testConfig(t))
		db, err := container.DB()
		require.NoError(t, err)
		require.NotNil(t, db)

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		require.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("DB init error is returned on every access", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.DatabasePath = filepath.Join(cfg.DatabasePath, "not-a-directory", "cards.db")
		container := NewContainer(cfg)

		_, err := container.DB()
		require.Error(t, err)

		_, err = container.DB()
		require.Error(t, err)
	})

	t.Run("PayloadCodec creates the key file on first access", func(t *testing.T) {
		cfg := testConfig(t)
		container := NewContainer(cfg)

		codec, err := container.PayloadCodec()
		require.NoError(t, err)
		require.NotNil(t, codec)
		assert.FileExists(t, cfg.KeyPath)
	})

	t.Run("PayloadCodec rejects unknown algorithm", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.EncryptionAlgorithm = "rot13"
		container := NewContainer(cfg)

		_, err := container.PayloadCodec()
		require.Error(t, err)
	})

	t.Run("Extractor rejects unknown strictness", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.CVVStrictness = "paranoid"
		container := NewContainer(cfg)

		_, err := container.Extractor()
		require.Error(t, err)
	})

	t.Run("CardUseCase wires all dependencies", func(t *testing.T) {
		container := NewContainer(testConfig(t))

		useCase, err := container.CardUseCase()
		require.NoError(t, err)
		require.NotNil(t, useCase)
		assert.Same(t, useCase, mustUseCase(t, container))

		require.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("HTTPServer is assembled from the container", func(t *testing.T) {
		container := NewContainer(testConfig(t))

		server, err := container.HTTPServer()
		require.NoError(t, err)
		require.NotNil(t, server)

		require.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("MetricsProvider and MetricsServer are nil when metrics are disabled", func(t *testing.T) {
		container := NewContainer(testConfig(t))

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, server)
	})

	t.Run("MetricsServer is created when metrics are enabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.MetricsEnabled = true
		cfg.MetricsNamespace = "cardvault_test"
		container := NewContainer(cfg)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		require.NotNil(t, server)

		require.NoError(t, container.Shutdown(context.Background()))
	})
}

func mustUseCase(t *testing.T, container *Container) any {
	t.Helper()
	useCase, err := container.CardUseCase()
	require.NoError(t, err)
	return useCase
}
