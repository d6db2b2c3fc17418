package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// TokenStore keeps the hash of the currently valid refresh token per session.
// Key format: refresh:<user_id>:<token_id>, value: hex SHA-256 of the token.
// Expiry tracks the refresh token TTL, so stale sessions clean themselves up.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Save registers tokenHash as the valid refresh credential for the session.
func (s *TokenStore) Save(ctx context.Context, userID uuid.UUID, tokenID, tokenHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID, tokenID), tokenHash, ttl).Err(); err != nil {
		return fmt.Errorf("token store save: %w", err)
	}
	return nil
}

// Validate checks that the session exists and the presented hash matches.
// Unknown sessions, expired keys and hash mismatches all collapse into
// domain.ErrInvalidToken.
func (s *TokenStore) Validate(ctx context.Context, userID uuid.UUID, tokenID, tokenHash string) error {
	stored, err := s.client.Get(ctx, s.key(userID, tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("token store validate: %w", err)
	}
	if stored != tokenHash {
		return domain.ErrInvalidToken
	}
	return nil
}

// Revoke forgets a single session.
func (s *TokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := s.client.Del(ctx, s.key(userID, tokenID)).Err(); err != nil {
		return fmt.Errorf("token store revoke: %w", err)
	}
	return nil
}

func (s *TokenStore) key(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh:%s:%s", userID, tokenID)
}
