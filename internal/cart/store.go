package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-food-orders.git/internal/redisx"
)

// Store persists cart state per session as an opaque JSON blob. Multi-tab
// last-write-wins memang diterima, tidak ada locking lintas tab.
type Store struct {
	R *redis.Client
}

// Load rehydrates the session's cart. Key hilang atau blob korup -> empty
// cart, tidak pernah error ke caller.
func (s *Store) Load(ctx context.Context, session string) *Cart {
	key := fmt.Sprintf(redisx.KeyCart, session)
	b, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return &Cart{}
	}
	return decode(b)
}

func decode(b []byte) *Cart {
	var c Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return &Cart{}
	}
	return &c
}

func (s *Store) Save(ctx context.Context, session string, c *Cart) error {
	key := fmt.Sprintf(redisx.KeyCart, session)
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, key, b, redisx.TTLCart).Err()
}

func (s *Store) Drop(ctx context.Context, session string) error {
	key := fmt.Sprintf(redisx.KeyCart, session)
	return s.R.Del(ctx, key).Err()
}
