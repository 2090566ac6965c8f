package redisx

import "time"

// Semua state per-session disimpan sebagai JSON blob biasa; kalau hilang
// atau korup, caller degrade ke empty state (jangan pernah error ke user).
const (
	// Cart state: cart:{session} -> cart JSON
	KeyCart = "cart:%s"

	// Delivery details yang di-stage antara step checkout dan payment:
	// checkout:delivery:{session} -> delivery JSON
	KeyDelivery = "checkout:delivery:%s"

	// Display number order terakhir: order:last:{session} -> "#1234"
	KeyLastOrder = "order:last:%s"

	// Post-auth callback URL (consume-once): auth:callback:{session} -> URL
	KeyAuthCallback = "auth:callback:%s"

	// Session token -> user_id
	KeySession = "sess:%s"

	// Cache status order: order_status:{order_id} -> {"status":"..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCart        = 7 * 24 * time.Hour
	TTLDelivery    = 2 * time.Hour
	TTLLastOrder   = 24 * time.Hour
	TTLCallback    = 15 * time.Minute
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
