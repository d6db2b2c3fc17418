package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// bcryptCost is fixed; changing it only affects newly hashed passwords.
const bcryptCost = 12

// AuthService implements registration, login and the refresh token lifecycle.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	store  ports.TokenStore
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, store ports.TokenStore, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, store: store, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	// Fast existence check; the unique index on users.email is the actual
	// guarantee, the repository translates a constraint violation into
	// ErrUserExists as well.
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Phone:        input.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// both come back as ErrInvalidCredentials so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh rotates the refresh token: the presented token is verified against
// the store, revoked, and a fresh pair is issued. A replayed (already
// rotated) token fails with ErrInvalidToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if err := s.store.Validate(ctx, claims.UserID, claims.TokenID, hashToken(refreshToken)); err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if err := s.store.Revoke(ctx, claims.UserID, claims.TokenID); err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

// Logout revokes the session carried by refreshToken. Invalid or already
// revoked tokens are ignored: logout must always succeed from the caller's
// point of view.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}
	if err := s.store.Revoke(ctx, claims.UserID, claims.TokenID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", claims.UserID.String()).Msg("failed to revoke refresh token")
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID.String()).Msg("password changed")
	return nil
}

// issueSession signs a new token pair and registers its refresh half in the
// store so it can be rotated and revoked.
func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, user.ID, pair.RefreshTokenID, hashToken(pair.RefreshToken), s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}
	return pair, nil
}

// hashToken returns the hex SHA-256 of a token. Only the digest is persisted;
// a leaked store never yields usable refresh tokens.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
