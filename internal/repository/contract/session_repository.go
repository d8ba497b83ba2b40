package contract

import (
	"context"
	"time"

	"extensions-web/internal/model"
)

// ISessionRepository is the external key/value session cache. Load returns
// (nil, nil) when the key is absent; Save writes the whole data map and
// refreshes the TTL. There is no partial write and no locking: concurrent
// saves for one key are last-write-wins.
type ISessionRepository interface {
	Load(ctx context.Context, key string) (*model.SessionData, error)
	Save(ctx context.Context, key string, data *model.SessionData, ttl time.Duration) error
}
