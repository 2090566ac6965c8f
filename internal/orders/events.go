package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "food-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type PlacedItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
	Qty        int    `json:"qty"`
}

// OrderPlacedPayload is the committed order snapshot. Both notification
// shapes (customer confirmation, restaurant alert) are built from this one
// payload, never from a re-read.
type OrderPlacedPayload struct {
	OrderID         string       `json:"order_id"`
	OrderNumber     string       `json:"order_number"` // display form "#1234"
	RestaurantID    string       `json:"restaurant_id"`
	RestaurantName  string       `json:"restaurant_name"`
	RestaurantPhone string       `json:"restaurant_phone,omitempty"`
	CustomerID      string       `json:"customer_id"`
	CustomerName    string       `json:"customer_name"`
	CustomerEmail   string       `json:"customer_email"`
	CustomerPhone   string       `json:"customer_phone"`
	DeliveryAddress string       `json:"delivery_address"`
	CustomerNotes   string       `json:"customer_notes,omitempty"`
	Items           []PlacedItem `json:"items"`
	TotalCents      int          `json:"total_cents"`
	PaymentMethod   string       `json:"payment_method"`
	MobileNumber    string       `json:"mobile_number,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

type StatusChangedPayload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        Status    `json:"from"`
	To          Status    `json:"to"`
	Reason      string    `json:"reason,omitempty"` // hanya untuk CANCELLED
	ChangedAt   time.Time `json:"changed_at"`
}
