// Package service implements the encrypted payload codec for card records.
package service

import (
	"encoding/base64"
	"encoding/json"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// PayloadCodec encrypts card payloads for storage and decrypts stored records.
//
// The encoded form is base64(nonce || ciphertext): the nonce length is fixed
// by the AEAD construction, so it can be split off again without a framing
// header. A codec instance holds a single cipher and is safe for concurrent use.
type PayloadCodec struct {
	cipher    cryptoService.AEAD
	nonceSize int
}

// NewPayloadCodec creates a codec backed by the given key and algorithm.
func NewPayloadCodec(
	manager cryptoService.AEADManager,
	key []byte,
	alg cryptoDomain.Algorithm,
) (*PayloadCodec, error) {
	cipher, err := manager.CreateCipher(key, alg)
	if err != nil {
		return nil, err
	}
	// Both supported AEAD constructions use 12-byte nonces.
	return &PayloadCodec{cipher: cipher, nonceSize: 12}, nil
}

// Encode serializes the payload to JSON, encrypts it, and returns the
// base64-encoded nonce-prefixed ciphertext.
func (c *PayloadCodec) Encode(payload cardDomain.Payload) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to serialize card payload")
	}
	defer cryptoDomain.Zero(plaintext)

	ciphertext, nonce, err := c.cipher.Encrypt(plaintext, nil)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encrypt card payload")
	}

	combined := make([]byte, 0, len(nonce)+len(ciphertext))
	combined = append(combined, nonce...)
	combined = append(combined, ciphertext...)
	return base64.StdEncoding.EncodeToString(combined), nil
}

// Decode reverses Encode. Corrupted input, a truncated blob, or a payload
// encrypted under a different key all surface as ErrDecryptionFailed.
func (c *PayloadCodec) Decode(encoded string) (cardDomain.Payload, error) {
	var payload cardDomain.Payload

	combined, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return payload, apperrors.Wrap(apperrors.ErrDecryptionFailed, "payload is not valid base64")
	}
	if len(combined) <= c.nonceSize {
		return payload, apperrors.Wrap(apperrors.ErrDecryptionFailed, "payload is too short")
	}

	nonce := combined[:c.nonceSize]
	ciphertext := combined[c.nonceSize:]

	plaintext, err := c.cipher.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return payload, apperrors.Wrap(apperrors.ErrDecryptionFailed, "authentication failed")
	}
	defer cryptoDomain.Zero(plaintext)

	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return payload, apperrors.Wrap(apperrors.ErrDecryptionFailed, "failed to deserialize card payload")
	}
	return payload, nil
}
