package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Levuisha/parfumerie/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	ratingOverlayKeyPrefix = "ratings:%d"
	resetTokenKeyPrefix    = "pwreset:%s"
	blacklistKeyPrefix     = "blacklist:%s"
)

const (
	// RatingOverlayTTL bounds staleness of the mirror; the database remains
	// the source of truth and repopulates the hash on the next miss.
	RatingOverlayTTL = 30 * time.Minute
	// ResetTokenTTL is how long a password-reset token stays redeemable.
	ResetTokenTTL = 30 * time.Minute
)

func ratingOverlayKey(userID uint) string {
	return fmt.Sprintf(ratingOverlayKeyPrefix, userID)
}

// ResetTokenKey returns the Redis key holding a password-reset token.
func ResetTokenKey(token string) string {
	return fmt.Sprintf(resetTokenKeyPrefix, token)
}

// BlacklistKey returns the Redis key marking a revoked JWT ID.
func BlacklistKey(jti string) string {
	return fmt.Sprintf(blacklistKeyPrefix, jti)
}

// RatingMirror mirrors a user's fragrance ratings into a Redis hash keyed by
// fragrance ID. It is a write-through display cache: every mutation goes to
// the database first, and mirror failures only log a warning.
type RatingMirror struct {
	rdb *redis.Client
}

// NewRatingMirror returns a RatingMirror backed by the given client, which
// may be nil (every operation becomes a no-op or a miss).
func NewRatingMirror(rdb *redis.Client) *RatingMirror {
	return &RatingMirror{rdb: rdb}
}

// Set records a rating in the user's overlay hash.
func (m *RatingMirror) Set(ctx context.Context, userID, fragranceID uint, score int) {
	if m.rdb == nil {
		return
	}
	key := ratingOverlayKey(userID)
	pipe := m.rdb.Pipeline()
	pipe.HSet(ctx, key, strconv.FormatUint(uint64(fragranceID), 10), score)
	pipe.Expire(ctx, key, RatingOverlayTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		middleware.Logger.WarnContext(ctx, "rating mirror set failed",
			slog.Any("user_id", userID), slog.String("error", err.Error()))
	}
}

// Remove drops a single fragrance's rating from the overlay hash.
func (m *RatingMirror) Remove(ctx context.Context, userID, fragranceID uint) {
	if m.rdb == nil {
		return
	}
	if err := m.rdb.HDel(ctx, ratingOverlayKey(userID), strconv.FormatUint(uint64(fragranceID), 10)).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "rating mirror remove failed",
			slog.Any("user_id", userID), slog.String("error", err.Error()))
	}
}

// Load returns the user's mirrored ratings keyed by fragrance ID. A nil map
// with ok=false means the mirror had nothing usable and the caller should
// fall back to the database.
func (m *RatingMirror) Load(ctx context.Context, userID uint) (map[uint]int, bool) {
	if m.rdb == nil {
		return nil, false
	}
	raw, err := m.rdb.HGetAll(ctx, ratingOverlayKey(userID)).Result()
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	ratings := make(map[uint]int, len(raw))
	for field, value := range raw {
		id, idErr := strconv.ParseUint(field, 10, 32)
		score, scoreErr := strconv.Atoi(value)
		if idErr != nil || scoreErr != nil {
			continue
		}
		ratings[uint(id)] = score
	}
	return ratings, true
}

// Fill replaces the user's overlay hash with the given ratings, typically
// after a database read repopulates a cold mirror.
func (m *RatingMirror) Fill(ctx context.Context, userID uint, ratings map[uint]int) {
	if m.rdb == nil || len(ratings) == 0 {
		return
	}
	key := ratingOverlayKey(userID)
	fields := make(map[string]interface{}, len(ratings))
	for fragranceID, score := range ratings {
		fields[strconv.FormatUint(uint64(fragranceID), 10)] = score
	}
	pipe := m.rdb.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, RatingOverlayTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		middleware.Logger.WarnContext(ctx, "rating mirror fill failed",
			slog.Any("user_id", userID), slog.String("error", err.Error()))
	}
}

// Drop clears the user's overlay hash. Called synchronously on logout so no
// per-user state survives the session locally.
func (m *RatingMirror) Drop(ctx context.Context, userID uint) {
	if m.rdb == nil {
		return
	}
	if err := m.rdb.Del(ctx, ratingOverlayKey(userID)).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "rating mirror drop failed",
			slog.Any("user_id", userID), slog.String("error", err.Error()))
	}
}
