package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	r := redis.NewClient(&redis.Options{Addr: addr})
	_ = r.WithTimeout(2 * time.Second)
	return r
}

func Exists(ctx context.Context, rdb *redis.Client, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// Dedup menandai event yang sudah pernah diproses per service.
type Dedup struct {
	R       *redis.Client
	Service string
}

func (d *Dedup) Seen(ctx context.Context, id string) bool {
	key := fmt.Sprintf(KeyDedup, d.Service, id)
	ok, _ := Exists(ctx, d.R, key)
	return ok
}

func (d *Dedup) Mark(ctx context.Context, id string) {
	key := fmt.Sprintf(KeyDedup, d.Service, id)
	_ = d.R.Set(ctx, key, "1", TTLDedup).Err()
}
