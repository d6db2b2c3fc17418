package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenService signs and verifies the access/refresh token pair. The two
// token kinds use distinct secrets so an access token can never be replayed
// against the refresh endpoint or vice versa.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssuePair signs a new access/refresh pair for the user. The access token
// carries the user id and email; the refresh token carries only the user id
// plus a rotation id.
func (s *TokenService) IssuePair(userID uuid.UUID, email string) (*ports.TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	})
	accessToken, err := access.SignedString(s.accessSecret)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.NewString()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"jti": tokenID,
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	})
	refreshToken, err := refresh.SignedString(s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &ports.TokenPair{
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		ExpiresIn:      int64(s.accessTTL.Seconds()),
		RefreshTokenID: tokenID,
	}, nil
}

// VerifyAccess validates signature and expiry of an access token. All
// failures collapse into domain.ErrInvalidToken; the cause is never exposed.
func (s *TokenService) VerifyAccess(token string) (*ports.AccessClaims, error) {
	claims, err := s.parse(token, s.accessSecret)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	return &ports.AccessClaims{UserID: userID, Email: email}, nil
}

// VerifyRefresh validates signature and expiry of a refresh token.
func (s *TokenService) VerifyRefresh(token string) (*ports.RefreshClaims, error) {
	claims, err := s.parse(token, s.refreshSecret)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.RefreshClaims{UserID: userID, TokenID: tokenID}, nil
}

// Decode reads claims and expiry from a token without verifying the
// signature. Anything with a well-formed payload decodes, including expired
// tokens and tokens signed with a foreign key; authorization always goes
// through VerifyAccess instead.
func (s *TokenService) Decode(token string) (*ports.AccessClaims, time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, time.Time{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, time.Time{}, domain.ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, time.Time{}, domain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	return &ports.AccessClaims{UserID: userID, Email: email}, exp.Time, nil
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) parse(token string, secret []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
