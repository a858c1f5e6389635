/*
Package card stores payment card data encrypted at rest.

The module follows Clean Architecture principles:
  - domain: Core entities (Payload, Record, Summary) and business rules
  - usecase: Business logic orchestration (add, get, list, scan, duplicate checks)
  - service: Encrypted payload codec (JSON -> AEAD -> base64)
  - repository: Data persistence (SQLite)
  - http: HTTP handlers and DTOs

# Storage Model

Only the encrypted payload touches the database: card number, CVV, and expiry
are serialized to JSON, sealed with AES-256-GCM or ChaCha20-Poly1305, and
stored as base64(nonce || ciphertext). The label and creation time remain in
plaintext for listing without decryption.

# Duplicate Detection

Because payloads are encrypted non-deterministically, duplicate detection
decrypts every stored record and compares normalized card numbers. Records
that fail to decrypt are skipped with a warning. Adds run the check and the
insert in one transaction; the force flag bypasses the check.

# Basic Usage

	card, err := cardUseCase.Add(ctx, domain.Payload{
	    CardNumber: "4276 3801 2345 6787",
	    CVV:        "123",
	    Expiry:     "12/25",
	}, "", false)
	// card.Label == "card-6787"

	results, err := cardUseCase.Scan(ctx, ocrText)
	for _, r := range results {
	    // r.LuhnValid, r.Duplicate
	}
*/
package card
