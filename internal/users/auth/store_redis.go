package auth

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/apperr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/constants"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/dberr"
)

// RedisSessionStore keeps refresh sessions in Redis where the key TTL does
// the expiry work.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (store *RedisSessionStore) PutSession(ctx context.Context, tokenHash string, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return apperr.Internal(err)
	}

	key := constants.RedisPrefixSession + tokenHash
	if err := store.client.Set(ctx, key, payload, constants.RefreshTokenTTL).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (store *RedisSessionStore) GetSession(ctx context.Context, tokenHash string) (*Session, error) {
	key := constants.RedisPrefixSession + tokenHash
	payload, err := store.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dberr.ErrNotFound
		}
		return nil, apperr.Internal(err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, apperr.Internal(err)
	}
	return &session, nil
}

func (store *RedisSessionStore) DeleteSession(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash
	if err := store.client.Del(ctx, key).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
