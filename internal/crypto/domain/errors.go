package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors to
// provide context for cryptographic failures.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrKeyFilePermissions indicates the key file permissions could not be
	// restricted to the owner. The key file is the protection boundary for the
	// vault, so this is fatal at initialization.
	ErrKeyFilePermissions = errors.Wrap(errors.ErrStorageInit, "key file permissions too open")
)
