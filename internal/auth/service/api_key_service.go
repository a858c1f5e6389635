// Package service provides API key generation and verification.
// Implements secure random key generation and Argon2id hashing.
package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

// APIKeyService generates and verifies API keys.
type APIKeyService interface {
	// GenerateKey creates a new random API key and its Argon2id hash.
	// The plain key is shown to the operator once; only the hash is configured.
	GenerateKey() (plainKey string, hashedKey string, err error)

	// HashKey hashes a plain API key using Argon2id.
	HashKey(plainKey string) (string, error)

	// CompareKey performs a constant-time comparison between a plain key and its hash.
	CompareKey(plainKey string, hashedKey string) bool
}

// apiKeyService implements APIKeyService using Argon2id hashing.
type apiKeyService struct {
	hasher *pwdhash.PasswordHasher
}

// NewAPIKeyService creates an APIKeyService using the Moderate Argon2id policy,
// a balance between security and per-request verification cost.
func NewAPIKeyService() APIKeyService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with a valid policy
		panic(err)
	}

	return &apiKeyService{
		hasher: hasher,
	}
}

// GenerateKey creates a cryptographically secure 32-byte random key.
// The key is base64-encoded for easy transmission and storage.
func (s *apiKeyService) GenerateKey() (plainKey string, hashedKey string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random key")
	}

	plainKey = base64.URLEncoding.EncodeToString(randomBytes)

	hashedKey, err = s.HashKey(plainKey)
	if err != nil {
		return "", "", err
	}

	return plainKey, hashedKey, nil
}

// HashKey hashes a plain API key using Argon2id.
func (s *apiKeyService) HashKey(plainKey string) (string, error) {
	hashedKey, err := s.hasher.Hash([]byte(plainKey))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash key")
	}
	return hashedKey, nil
}

// CompareKey performs a constant-time comparison between a plain key and its hash.
func (s *apiKeyService) CompareKey(plainKey string, hashedKey string) bool {
	ok, err := s.hasher.Verify([]byte(plainKey), hashedKey)
	if err != nil {
		return false
	}
	return ok
}
