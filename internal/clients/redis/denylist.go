package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/akulinich/foodgram-backend/internal/logger"
)

// TokenDenylist invalidates access tokens before their natural expiry.
// Logout writes the token here; the auth middleware checks it on every
// protected request.
type TokenDenylist interface {
	Deny(ctx context.Context, token string, ttl time.Duration) error
	IsDenied(ctx context.Context, token string) (bool, error)
	Close() error
}

type tokenDenylist struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewTokenDenylist(addr string, log *logger.Logger) (TokenDenylist, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &tokenDenylist{
		log: log.With("service", "TokenDenylist"),
		rdb: rdb,
	}, nil
}

func denyKey(token string) string {
	return "denied_token:" + token
}

func (d *tokenDenylist) Deny(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired on its own.
		return nil
	}
	return d.rdb.Set(ctx, denyKey(token), "1", ttl).Err()
}

func (d *tokenDenylist) IsDenied(ctx context.Context, token string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denyKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *tokenDenylist) Close() error {
	return d.rdb.Close()
}
