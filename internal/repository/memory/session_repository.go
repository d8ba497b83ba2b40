package memory

import (
	"context"
	"encoding/json"
	"time"

	"extensions-web/internal/model"
	"extensions-web/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type sessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository is the in-process stand-in for the network cache, used
// by tests and SESSION_STORE=memory. Entries are stored as serialized bytes so
// every Load hands back an independent copy, same as the Redis store: two
// requests mutating one session still race last-write-wins.
func NewSessionRepository() contract.ISessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &sessionRepository{cache: c}
}

func (r *sessionRepository) Load(_ context.Context, key string) (*model.SessionData, error) {
	x, found := r.cache.Get(key)
	if !found {
		return nil, nil
	}

	var data model.SessionData
	if err := json.Unmarshal(x.([]byte), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *sessionRepository) Save(_ context.Context, key string, data *model.SessionData, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	r.cache.Set(key, raw, ttl)
	return nil
}
