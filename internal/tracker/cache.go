package tracker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-food-orders.git/internal/orders"
	"github.com/ariefcatur/go-food-orders.git/internal/redisx"
)

// Cache is the order-status cache biar polling GET murah. Best-effort:
// miss atau error redis cukup jatuh ke DB.
type Cache struct {
	R *redis.Client
}

type cached struct {
	Status orders.Status `json:"status"`
}

// ref adalah bagian numerik dari display number ("1234" untuk "#1234").
func (c *Cache) Set(ctx context.Context, ref string, st orders.Status) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, ref)
	b, _ := json.Marshal(cached{Status: st})
	_ = c.R.Set(ctx, key, b, redisx.TTLStatusCache).Err()
}

func (c *Cache) Get(ctx context.Context, ref string) (orders.Status, bool) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, ref)
	b, err := c.R.Get(ctx, key).Bytes()
	if err != nil {
		return "", false
	}
	var v cached
	if err := json.Unmarshal(b, &v); err != nil || !v.Status.Valid() {
		return "", false
	}
	return v.Status, true
}
