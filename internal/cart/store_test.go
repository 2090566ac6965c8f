package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_CorruptBlobDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"garbage", "{not json"},
		{"wrong_type", `"just a string"`},
		{"empty", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := decode([]byte(tc.blob))
			assert.NotNil(t, c)
			assert.True(t, c.IsEmpty())
			assert.Equal(t, "", c.RestaurantID)
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	c := &Cart{}
	assert.NoError(t, c.AddItem("r1", "Warung Satu", Item{ID: "m1", Name: "Pizza", PriceCents: 1000, Quantity: 2}))

	b := []byte(`{"restaurant_id":"r1","restaurant_name":"Warung Satu","items":[{"id":"m1","name":"Pizza","price_cents":1000,"quantity":2}]}`)
	got := decode(b)
	assert.Equal(t, c.RestaurantID, got.RestaurantID)
	assert.Equal(t, c.SubtotalCents(), got.SubtotalCents())
	assert.Equal(t, c.Items, got.Items)
}
