package secrets

import (
	"context"
	"errors"
)

// Manager provides access to secrets from various sources. The vault
// implementation is used when VAULT_ADDR is configured; otherwise keys
// stay wherever the environment put them.
type Manager interface {
	// GetSecret retrieves a secret by key
	GetSecret(ctx context.Context, key string) (string, error)

	// GetSecretWithDefault retrieves a secret with a default value if not found
	GetSecretWithDefault(ctx context.Context, key, defaultValue string) string
}

// Common errors
var (
	ErrSecretNotFound = errors.New("secret not found")
	ErrNoVaultToken   = errors.New("no vault token provided")
)
