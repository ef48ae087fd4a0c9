// internal/pkg/auth/password.go
package auth

import (
	"fmt"

	"github.com/your-org/storefront-gateway/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// KeyManager handles admin key operations
type KeyManager struct {
	config *config.Config
}

// NewKeyManager creates a new key manager
func NewKeyManager(cfg *config.Config) *KeyManager {
	return &KeyManager{
		config: cfg,
	}
}

// HashKey hashes an admin key using bcrypt
func (k *KeyManager) HashKey(key string) (string, error) {
	if err := k.ValidateKey(key); err != nil {
		return "", fmt.Errorf("key validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(key), k.config.Security.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash key: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyKey verifies an admin key against its hash
func (k *KeyManager) VerifyKey(key, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
}

// ValidateKey validates admin key strength
func (k *KeyManager) ValidateKey(key string) error {
	if len(key) < 12 {
		return fmt.Errorf("admin key must be at least 12 characters long")
	}

	if len(key) > 128 {
		return fmt.Errorf("admin key must be no more than 128 characters long")
	}

	return nil
}
