// Package auth is the narrow slice of the auth collaborator this service
// consumes: token -> user lookup, plus the consume-once post-login callback
// URL slot. Sign-in itself lives elsewhere.
package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-food-orders.git/internal/orders"
	"github.com/ariefcatur/go-food-orders.git/internal/redisx"
)

type Sessions struct {
	R *redis.Client
}

// UserID resolves a bearer token to the signed-in user.
func (a *Sessions) UserID(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", orders.ErrNotAuthenticated
	}
	key := fmt.Sprintf(redisx.KeySession, token)
	uid, err := a.R.Get(ctx, key).Result()
	if err == redis.Nil || uid == "" {
		return "", orders.ErrNotAuthenticated
	} else if err != nil {
		return "", &orders.TransientError{Err: err}
	}
	return uid, nil
}

// SaveCallback stores the route to bounce back to after sign-in.
func (a *Sessions) SaveCallback(ctx context.Context, session, url string) error {
	key := fmt.Sprintf(redisx.KeyAuthCallback, session)
	return a.R.Set(ctx, key, url, redisx.TTLCallback).Err()
}

// ConsumeCallback reads then clears the slot dalam satu operasi (GETDEL),
// supaya redirect loop tidak kejadian.
func (a *Sessions) ConsumeCallback(ctx context.Context, session string) (string, bool) {
	key := fmt.Sprintf(redisx.KeyAuthCallback, session)
	url, err := a.R.GetDel(ctx, key).Result()
	if err != nil || url == "" {
		return "", false
	}
	return url, true
}
