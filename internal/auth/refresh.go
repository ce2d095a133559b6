package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenTTL = 7 * 24 * time.Hour

var (
	rdb *redis.Client
	ctx context.Context
)

// SetRedisClient hands the package the client backing refresh tokens and login
// strikes. Without one, refresh tokens and lockouts are disabled.
func SetRedisClient(client *redis.Client, c context.Context) {
	rdb = client
	ctx = c
}

// ErrRefreshTokenNotFound is returned when a refresh token is unknown, expired,
// or already consumed.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

func refreshKey(token string) string {
	return "auth:refresh:" + token
}

// NewRefreshToken issues a one-time refresh token for the user. Returns an
// empty token when no redis backend is configured.
func NewRefreshToken(username string) (string, error) {
	if rdb == nil {
		return "", nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := rdb.Set(ctx, refreshKey(token), username, refreshTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return token, nil
}

// ConsumeRefreshToken redeems a refresh token and returns the username it was
// issued for. Tokens are single-use.
func ConsumeRefreshToken(token string) (string, error) {
	if rdb == nil {
		return "", ErrRefreshTokenNotFound
	}
	username, err := rdb.GetDel(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRefreshTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redeem refresh token: %w", err)
	}
	return username, nil
}
