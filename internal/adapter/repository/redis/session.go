package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"peerlend-api/internal/domain/session"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// SessionStore keeps token sessions in Redis with the token's TTL, so a
// revoked or expired session disappears without any sweeper.
type SessionStore struct{ rdb *goredis.Client }

func NewSessionStore(rdb *goredis.Client) *SessionStore { return &SessionStore{rdb: rdb} }

func (s *SessionStore) Save(ctx context.Context, tokenID string, userID uint64, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyPrefix+tokenID, strconv.FormatUint(userID, 10), ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, tokenID string) (uint64, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, session.ErrNotFound
		}
		return 0, err
	}
	uid, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, session.ErrNotFound
	}
	return uid, nil
}

func (s *SessionStore) Revoke(ctx context.Context, tokenID string) error {
	return s.rdb.Del(ctx, keyPrefix+tokenID).Err()
}
