package auth

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	maxLoginStrikes = 5
	strikeWindow    = 15 * time.Minute
)

func strikeKey(username string) string {
	return "auth:strikes:" + username
}

// RegisterFailedLogin records a failed attempt and returns how many strikes the
// user has accumulated inside the current window.
func RegisterFailedLogin(username string) (int, error) {
	if rdb == nil {
		return 0, nil
	}
	key := strikeKey(username)
	strikes, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("record failed login: %w", err)
	}
	// First strike opens the window; later ones do not extend it.
	if strikes == 1 {
		_ = rdb.Expire(ctx, key, strikeWindow).Err()
	}

	if strikes == maxLoginStrikes {
		log.Warn().Str("username", username).Int64("strikes", strikes).
			Msg("account locked after repeated failed logins")
	}
	return int(strikes), nil
}

// IsLockedOut reports whether the user exhausted their login attempts.
func IsLockedOut(username string) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	strikes, err := rdb.Get(ctx, strikeKey(username)).Int()
	if err != nil {
		return false, nil // missing key means no strikes
	}
	return strikes >= maxLoginStrikes, nil
}

// ClearStrikes resets the counter after a successful login.
func ClearStrikes(username string) {
	if rdb == nil {
		return
	}
	_ = rdb.Del(ctx, strikeKey(username)).Err()
}
