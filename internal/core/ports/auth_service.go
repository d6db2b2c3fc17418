package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// UpdateProfileInput uses pointers so omitted fields stay untouched.
type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

// AuthService implements the account and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns the token pair and the authenticated user. Unknown email
	// and wrong password are indistinguishable (domain.ErrInvalidCredentials).
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	// Refresh rotates the refresh token and issues a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout revokes the session carried by refreshToken. A missing or
	// already-revoked token is not an error.
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}
