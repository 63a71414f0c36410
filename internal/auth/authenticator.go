package auth

import (
	"context"

	"github.com/mmynk/bucketpos/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, PIN, badge reader)
// without changing the service layer code.
type Authenticator interface {
	// Authenticate verifies the user's credentials and returns the user if successful.
	// Unknown users and wrong credentials both yield ErrInvalidCredentials;
	// inactive accounts yield ErrUserDisabled.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if a new credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

// Hasher turns secrets into storable hashes and checks them.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(hash, secret string) bool
}
