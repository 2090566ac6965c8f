package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-food-orders.git/internal/redisx"
)

// RedisStage holds the two session blobs that live between checkout steps:
// delivery details yang sudah tervalidasi, dan display number order terakhir
// (buat confirmation page query).
type RedisStage struct {
	R *redis.Client
}

func (s *RedisStage) StageDelivery(ctx context.Context, session string, d DeliveryDetails) error {
	key := fmt.Sprintf(redisx.KeyDelivery, session)
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, key, b, redisx.TTLDelivery).Err()
}

// Delivery loads the staged details; missing atau korup -> false, degrade.
func (s *RedisStage) Delivery(ctx context.Context, session string) (DeliveryDetails, bool) {
	var d DeliveryDetails
	key := fmt.Sprintf(redisx.KeyDelivery, session)
	b, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return d, false
	}
	if err := json.Unmarshal(b, &d); err != nil {
		return d, false
	}
	return d, true
}

func (s *RedisStage) ClearDelivery(ctx context.Context, session string) error {
	return s.R.Del(ctx, fmt.Sprintf(redisx.KeyDelivery, session)).Err()
}

func (s *RedisStage) SaveLastOrder(ctx context.Context, session, display string) error {
	key := fmt.Sprintf(redisx.KeyLastOrder, session)
	return s.R.Set(ctx, key, display, redisx.TTLLastOrder).Err()
}

func (s *RedisStage) LastOrder(ctx context.Context, session string) (string, bool) {
	key := fmt.Sprintf(redisx.KeyLastOrder, session)
	v, err := s.R.Get(ctx, key).Result()
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}
