package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is the result of issuing credentials for a user session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the access token lifetime in seconds, returned to clients
	// so they can schedule a silent refresh without decoding the JWT.
	ExpiresIn int64
	// RefreshTokenID is the rotation id (jti) embedded in RefreshToken.
	// Used internally to key the token store; never sent to clients.
	RefreshTokenID string
}

// AccessClaims is the verified payload of an access token.
type AccessClaims struct {
	UserID uuid.UUID
	Email  string
}

// RefreshClaims is the verified payload of a refresh token. Refresh tokens
// deliberately carry no email, only the user id and a rotation id.
type RefreshClaims struct {
	UserID  uuid.UUID
	TokenID string
}

// TokenIssuer creates and validates the signed access/refresh token pair.
// Verification failures are uniform: callers get domain.ErrInvalidToken
// whether the token was malformed, expired, or signed with the wrong key.
type TokenIssuer interface {
	IssuePair(userID uuid.UUID, email string) (*TokenPair, error)
	VerifyAccess(token string) (*AccessClaims, error)
	VerifyRefresh(token string) (*RefreshClaims, error)
	// Decode reads the claims and expiry of an access token without checking
	// the signature. It exists so clients can schedule a silent refresh from
	// the embedded expiry; its result must never drive an authorization
	// decision.
	Decode(token string) (*AccessClaims, time.Time, error)
	// AccessTTL reports the configured access token lifetime.
	AccessTTL() time.Duration
	// RefreshTTL reports the configured refresh token lifetime.
	RefreshTTL() time.Duration
}

// TokenStore tracks the currently valid refresh token per session so that
// refresh tokens rotate: a used or revoked token cannot be replayed.
type TokenStore interface {
	// Save records tokenHash as the valid refresh credential for the
	// (userID, tokenID) session, expiring after ttl.
	Save(ctx context.Context, userID uuid.UUID, tokenID, tokenHash string, ttl time.Duration) error
	// Validate returns domain.ErrInvalidToken when the session is unknown,
	// expired, or the hash does not match.
	Validate(ctx context.Context, userID uuid.UUID, tokenID, tokenHash string) error
	// Revoke forgets a single session.
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error
}
