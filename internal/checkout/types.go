package checkout

// DeliveryDetails is the fixed checkout form schema. Validation is
// field-level; a failed submit stages nothing.
type DeliveryDetails struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7"`
	Address   string `json:"address" validate:"required"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

// PaymentProof is the manual mobile-money flow: user transfers lewat
// provider lalu mengetik nomor + referensi transaksinya sendiri. Verifikasi
// manual di sisi resto, bukan gateway.
type PaymentProof struct {
	Method       string `json:"method" validate:"required,oneof=MOBILE_MONEY"`
	MobileNumber string `json:"mobile_number" validate:"required,min=7"`
	ProviderName string `json:"provider_name" validate:"required"`
	ProviderRef  string `json:"provider_ref" validate:"omitempty,max=64"`
}

type PlacedOrder struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"` // display form, e.g. "#1234"
	TotalCents    int    `json:"total_cents"`
	TotalAdjusted bool   `json:"total_adjusted"` // server recomputed a different total
}
