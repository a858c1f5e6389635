package commands

import (
	"fmt"
	"io"
	"log/slog"

	authService "github.com/allisson/cardvault/internal/auth/service"
)

// RunCreateAPIKey generates a new API key and prints both the plain key and
// its Argon2id hash. The hash goes into the API_KEY_HASH environment
// variable; the plain key is shown only once.
func RunCreateAPIKey(
	keyService authService.APIKeyService,
	logger *slog.Logger,
	format string,
	io IOTuple,
) error {
	plainKey, hashedKey, err := keyService.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate API key: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]string{
			"api_key":      plainKey,
			"api_key_hash": hashedKey,
		}, io.Writer)
	} else {
		outputAPIKeyText(plainKey, hashedKey, io.Writer)
	}

	logger.Info("api key generated")

	return nil
}

func outputAPIKeyText(plainKey, hashedKey string, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "API key generated successfully!")
	_, _ = fmt.Fprintf(writer, "Key: %s\n", plainKey)
	_, _ = fmt.Fprintf(writer, "Hash: %s\n", hashedKey)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The key is shown only once. Store it securely and set")
	_, _ = fmt.Fprintln(writer, "API_KEY_HASH to the hash value to enable API authentication.")
}
