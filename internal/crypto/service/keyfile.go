package service

import (
	"crypto/rand"
	"fmt"
	"os"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// keyFileMode restricts the key file to owner read/write.
const keyFileMode = os.FileMode(0o600)

// LoadOrCreateKey loads the vault key from path, generating a fresh random
// 32-byte key on first use.
//
// The key file is the sole protection boundary for data at rest, so it is
// written with owner-only permissions and existing files with broader
// permissions are tightened before the key is returned. Multiple store
// instances loading from the same path observe identical key bytes.
//
// The returned slice is sensitive; callers own its lifecycle and should keep
// it for the lifetime of the store instance.
func LoadOrCreateKey(path string) ([]byte, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return loadKey(path, info.Mode())
	case os.IsNotExist(err):
		return createKey(path)
	default:
		return nil, apperrors.Wrap(apperrors.ErrStorageInit, fmt.Sprintf("failed to stat key file: %v", err))
	}
}

func loadKey(path string, mode os.FileMode) ([]byte, error) {
	if mode.Perm()&0o077 != 0 {
		if err := os.Chmod(path, keyFileMode); err != nil {
			return nil, cryptoDomain.ErrKeyFilePermissions
		}
	}

	key, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageInit, fmt.Sprintf("failed to read key file: %v", err))
	}

	if len(key) != cryptoDomain.KeySize {
		return nil, apperrors.Wrap(
			apperrors.ErrStorageInit,
			fmt.Sprintf("key file must contain exactly %d bytes, got %d", cryptoDomain.KeySize, len(key)),
		)
	}

	return key, nil
}

func createKey(path string) ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageInit, fmt.Sprintf("failed to generate key: %v", err))
	}

	if err := os.WriteFile(path, key, keyFileMode); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageInit, fmt.Sprintf("failed to write key file: %v", err))
	}

	// WriteFile applies the mode only on creation; enforce it regardless of umask.
	if err := os.Chmod(path, keyFileMode); err != nil {
		return nil, cryptoDomain.ErrKeyFilePermissions
	}

	return key, nil
}
