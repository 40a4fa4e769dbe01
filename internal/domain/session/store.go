package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound: the session id is unknown, expired or revoked.
var ErrNotFound = errors.New("session not found")

// Store keeps issued token sessions server-side so bearer tokens can be
// revoked before their JWT expiry (logout).
type Store interface {
	Save(ctx context.Context, tokenID string, userID uint64, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (uint64, error)
	Revoke(ctx context.Context, tokenID string) error
}
