package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a [Store] backed by a Redis key namespace, for deployments
// where the session must be shared across client processes (kiosk pools,
// embedded webviews with a local agent). Keys are
// "<prefix>:token|user|role".
type Redis struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis-backed store. prefix sets the key namespace
// and defaults to "mentorsphere".
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = "mentorsphere"
	}
	return &Redis{redis: client, prefix: prefix}
}

func (r *Redis) key(entry string) string {
	return r.prefix + ":" + entry
}

func (r *Redis) get(ctx context.Context, entry string) (string, error) {
	val, err := r.redis.Get(ctx, r.key(entry)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return val, nil
}

func (r *Redis) set(ctx context.Context, entry, val string) error {
	if err := r.redis.Set(ctx, r.key(entry), val, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *Redis) GetToken(ctx context.Context) (string, error) {
	return r.get(ctx, keyToken)
}

func (r *Redis) SetToken(ctx context.Context, token string) error {
	return r.set(ctx, keyToken, token)
}

func (r *Redis) GetUser(ctx context.Context) (*UserRecord, error) {
	raw, err := r.get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var user UserRecord
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Defensive parse: malformed user data reads as absent.
		return nil, nil
	}
	return &user, nil
}

func (r *Redis) SetUser(ctx context.Context, user *UserRecord) error {
	if user == nil {
		if err := r.redis.Del(ctx, r.key(keyUser)).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return r.set(ctx, keyUser, string(data))
}

func (r *Redis) GetRole(ctx context.Context) (string, error) {
	return r.get(ctx, keyRole)
}

func (r *Redis) SetRole(ctx context.Context, role string) error {
	return r.set(ctx, keyRole, role)
}

// ClearAll deletes all three entries in one transaction so no reader can
// observe a partially cleared session.
func (r *Redis) ClearAll(ctx context.Context) error {
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(keyToken), r.key(keyUser), r.key(keyRole))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
