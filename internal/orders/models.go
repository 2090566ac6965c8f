package orders

import (
	"strconv"
	"time"
)

type Restaurant struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	ImageURL          string    `json:"image_url,omitempty"`
	DeliveryFeeCents  int       `json:"delivery_fee_cents"`
	DeliveryTimeRange string    `json:"delivery_time_range"` // "min-max" menit, e.g. "30-45"
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type MenuItem struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PriceCents   int       `json:"price_cents"`
	Category     string    `json:"category,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Order is immutable after creation except for status (and cancellation
// reason). Totals are computed once at creation time and never recomputed
// from live menu prices.
type Order struct {
	ID                 string              `json:"id"`
	Number             int64               `json:"number"`
	Status             Status              `json:"status"`
	TotalCents         int                 `json:"total_cents"`
	DeliveryAddress    string              `json:"delivery_address"`
	CustomerNotes      string              `json:"customer_notes,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	RestaurantID       string              `json:"restaurant_id"`
	CustomerID         string              `json:"customer_id"`
	Items              []OrderItem         `json:"items"`
	Payment            *PaymentTransaction `json:"payment,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// DisplayNumber is the human-facing form, e.g. "#1234".
func (o *Order) DisplayNumber() string {
	return "#" + strconv.FormatInt(o.Number, 10)
}

// OrderItem is a snapshot: name dan price dicopy saat order dibuat supaya
// edit/delete menu belakangan tidak mengubah order historis.
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

const (
	PaymentMethodMobileMoney = "MOBILE_MONEY"

	PaymentStatusPending  = "PENDING_VERIFICATION"
	PaymentStatusVerified = "VERIFIED"
	PaymentStatusRejected = "REJECTED"
)

// PaymentTransaction is 1:1 with Order, created in the same transaction.
type PaymentTransaction struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	AmountCents  int       `json:"amount_cents"`
	Method       string    `json:"method"`
	Status       string    `json:"status"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	ProviderName string    `json:"provider_name,omitempty"`
	ProviderRef  string    `json:"provider_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
