package service

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

func testKey(t *testing.T) []byte {
	t.Helper()

	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewPayloadCodec(t *testing.T) {
	manager := cryptoService.NewAEADManager()

	t.Run("supported algorithms", func(t *testing.T) {
		for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
			codec, err := NewPayloadCodec(manager, testKey(t), alg)
			require.NoError(t, err)
			assert.NotNil(t, codec)
		}
	})

	t.Run("invalid key size", func(t *testing.T) {
		codec, err := NewPayloadCodec(manager, []byte("short"), cryptoDomain.AESGCM)
		assert.Error(t, err)
		assert.Nil(t, codec)
	})
}

func TestPayloadCodec_RoundTrip(t *testing.T) {
	manager := cryptoService.NewAEADManager()

	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			codec, err := NewPayloadCodec(manager, testKey(t), alg)
			require.NoError(t, err)

			payload := cardDomain.Payload{
				CardNumber: "4276 3801 2345 6787",
				CVV:        "123",
				Expiry:     "12/25",
			}

			encoded, err := codec.Encode(payload)
			require.NoError(t, err)
			assert.NotEmpty(t, encoded)
			assert.NotContains(t, encoded, "4276")

			decoded, err := codec.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestPayloadCodec_EncodeIsNonDeterministic(t *testing.T) {
	manager := cryptoService.NewAEADManager()
	codec, err := NewPayloadCodec(manager, testKey(t), cryptoDomain.AESGCM)
	require.NoError(t, err)

	payload := cardDomain.Payload{CardNumber: "4276 3801 2345 6787"}

	first, err := codec.Encode(payload)
	require.NoError(t, err)
	second, err := codec.Encode(payload)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPayloadCodec_DecodeErrors(t *testing.T) {
	manager := cryptoService.NewAEADManager()
	key := testKey(t)
	codec, err := NewPayloadCodec(manager, key, cryptoDomain.AESGCM)
	require.NoError(t, err)

	valid, err := codec.Encode(cardDomain.Payload{CardNumber: "4276 3801 2345 6787"})
	require.NoError(t, err)

	t.Run("not base64", func(t *testing.T) {
		_, err := codec.Decode("not-valid-base64!!!")
		assert.ErrorIs(t, err, apperrors.ErrDecryptionFailed)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := codec.Decode(base64.StdEncoding.EncodeToString([]byte("short")))
		assert.ErrorIs(t, err, apperrors.ErrDecryptionFailed)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		raw, decodeErr := base64.StdEncoding.DecodeString(valid)
		require.NoError(t, decodeErr)
		raw[len(raw)-1] ^= 0xff

		_, err := codec.Decode(base64.StdEncoding.EncodeToString(raw))
		assert.ErrorIs(t, err, apperrors.ErrDecryptionFailed)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, codecErr := NewPayloadCodec(manager, testKey(t), cryptoDomain.AESGCM)
		require.NoError(t, codecErr)

		_, err := other.Decode(valid)
		assert.ErrorIs(t, err, apperrors.ErrDecryptionFailed)
	})
}
