package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/models"
)

type stubUsers map[string]*models.User

func (s stubUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := s[username]
	if !ok {
		return nil, apperr.NotFound("user not found: %s", username)
	}
	copied := *user
	return &copied, nil
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "secret" {
		t.Fatal("Expected hash to differ from the secret")
	}
	if !hasher.Verify(hash, "secret") {
		t.Error("Expected Verify to accept the right secret")
	}
	if hasher.Verify(hash, "Secret") {
		t.Error("Expected Verify to reject a wrong secret")
	}
}

func TestPasswordAuthenticator(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("admin")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	users := stubUsers{
		"admin":  {ID: 1, Username: "admin", Role: models.RoleAdmin, Active: true, PasswordHash: hash},
		"former": {ID: 2, Username: "former", Role: models.RoleUser, Active: false, PasswordHash: hash},
	}
	authenticator := NewPasswordAuthenticator(users, hasher)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid credentials", " admin ", "admin", nil},
		{"wrong password", "admin", "nope", ErrInvalidCredentials},
		{"unknown user", "ghost", "admin", ErrInvalidCredentials},
		{"disabled user", "former", "admin", ErrUserDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := authenticator.Authenticate(ctx, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if user.ID != 1 {
					t.Errorf("Expected user 1, got %d", user.ID)
				}
				if user.PasswordHash != "" {
					t.Error("Expected hash to be cleared")
				}
			}
		})
	}
}

func TestValidateCredential(t *testing.T) {
	authenticator := NewPasswordAuthenticator(stubUsers{}, NewBcryptHasher(bcrypt.MinCost))

	if err := authenticator.ValidateCredential("abc"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Expected ErrWeakPassword, got %v", err)
	}
	if err := authenticator.ValidateCredential("abcd"); err != nil {
		t.Errorf("Expected valid credential, got %v", err)
	}
}
