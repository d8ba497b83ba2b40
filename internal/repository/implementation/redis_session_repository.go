package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"extensions-web/internal/model"
	"extensions-web/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type redisSessionRepository struct {
	rdb *redis.Client
}

func NewRedisSessionRepository(rdb *redis.Client) contract.ISessionRepository {
	return &redisSessionRepository{rdb: rdb}
}

func (r *redisSessionRepository) Load(ctx context.Context, key string) (*model.SessionData, error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var data model.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *redisSessionRepository) Save(ctx context.Context, key string, data *model.SessionData, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key, raw, ttl).Err()
}
