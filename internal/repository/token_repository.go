package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/train-booking/internal/model"
)

// TokenRepo persists refresh tokens in Redis. Only the SHA-256 hash of a
// token is stored, as key "<prefix>:<hash>" holding the user ID with the
// token's remaining lifetime as TTL. A per-user set tracks live hashes so
// that every session of a user can be revoked at once.
type TokenRepo struct {
	rdb    *redis.Client
	prefix string
}

func NewTokenRepo(rdb *redis.Client) *TokenRepo { return &TokenRepo{rdb: rdb, prefix: "refresh"} }

func (r *TokenRepo) tokenKey(hash string) string  { return r.prefix + ":" + hash }
func (r *TokenRepo) userKey(userID string) string { return r.prefix + ":user:" + userID }

// StoreRefresh records a refresh token hash for a user until exp.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return fmt.Errorf("%w: refresh token already expired", model.ErrValidation)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.tokenKey(tokenHash), userID, ttl)
	pipe.SAdd(ctx, r.userKey(userID), tokenHash)
	pipe.Expire(ctx, r.userKey(userID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return storageErr("store refresh token", err)
	}
	return nil
}

// ValidateRefresh returns the owning user ID of a live token. Expired and
// revoked tokens are both reported as model.ErrNotFound.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	userID, err := r.rdb.Get(ctx, r.tokenKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: refresh token", model.ErrNotFound)
	}
	if err != nil {
		return "", storageErr("validate refresh token", err)
	}
	return userID, nil
}

// RevokeByHash deletes a single token.
func (r *TokenRepo) RevokeByHash(ctx context.Context, userID, tokenHash string) error {
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, r.tokenKey(tokenHash))
	pipe.SRem(ctx, r.userKey(userID), tokenHash)
	if _, err := pipe.Exec(ctx); err != nil {
		return storageErr("revoke refresh token", err)
	}
	return nil
}

// RevokeAllForUser deletes every live token of a user.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	hashes, err := r.rdb.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return storageErr("list refresh tokens", err)
	}
	keys := make([]string, 0, len(hashes)+1)
	for _, h := range hashes {
		keys = append(keys, r.tokenKey(h))
	}
	keys = append(keys, r.userKey(userID))
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return storageErr("revoke refresh tokens", err)
	}
	return nil
}
