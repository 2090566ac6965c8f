package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pizza(qty int) Item {
	return Item{ID: "m1", Name: "Pizza", PriceCents: 1000, Quantity: qty}
}

func TestCart_AddItem_SubtotalAlwaysDerived(t *testing.T) {
	c := &Cart{}

	adds := []Item{
		{ID: "m1", Name: "Pizza", PriceCents: 1000, Quantity: 2},
		{ID: "m2", Name: "Soda", PriceCents: 300, Quantity: 1},
		{ID: "m1", Name: "Pizza", PriceCents: 1000, Quantity: 1}, // merge qty
	}
	want := []int{2000, 2300, 3300}

	for i, it := range adds {
		assert.NoError(t, c.AddItem("r1", "Warung Satu", it))
		assert.Equal(t, want[i], c.SubtotalCents())
	}
	assert.Len(t, c.Items, 2) // m1 merged, bukan duplikat
	assert.Equal(t, 4, c.ItemCount())
	assert.Equal(t, "r1", c.RestaurantID)
}

func TestCart_AddItem_InvalidItem(t *testing.T) {
	c := &Cart{}
	assert.ErrorIs(t, c.AddItem("r1", "Warung Satu", Item{ID: "m1", Quantity: 0, PriceCents: 100}), ErrInvalidItem)
	assert.ErrorIs(t, c.AddItem("r1", "Warung Satu", Item{ID: "m1", Quantity: 1, PriceCents: -5}), ErrInvalidItem)
	assert.ErrorIs(t, c.AddItem("r1", "Warung Satu", Item{Quantity: 1, PriceCents: 100}), ErrInvalidItem)
	assert.True(t, c.IsEmpty())
}

func TestCart_CrossRestaurant_NeverMergesSilently(t *testing.T) {
	c := &Cart{}
	assert.NoError(t, c.AddItem("r1", "Warung Satu", pizza(2)))

	burger := Item{ID: "m9", Name: "Burger", PriceCents: 800, Quantity: 1}
	err := c.AddItem("r2", "Warung Dua", burger)
	assert.ErrorIs(t, err, ErrDifferentRestaurant)

	// cart belum berubah, cuma pending yang ke-stage
	assert.Equal(t, "r1", c.RestaurantID)
	assert.Equal(t, 2000, c.SubtotalCents())
	assert.NotNil(t, c.Pending)
	assert.Equal(t, "r2", c.Pending.RestaurantID)
}

func TestCart_ConfirmReplace(t *testing.T) {
	c := &Cart{}
	assert.NoError(t, c.AddItem("r1", "Warung Satu", pizza(2)))
	burger := Item{ID: "m9", Name: "Burger", PriceCents: 800, Quantity: 1}
	assert.ErrorIs(t, c.AddItem("r2", "Warung Dua", burger), ErrDifferentRestaurant)

	assert.NoError(t, c.ConfirmReplace())

	// hanya item resto baru yang tersisa
	assert.Equal(t, "r2", c.RestaurantID)
	assert.Equal(t, "Warung Dua", c.RestaurantName)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, "m9", c.Items[0].ID)
	assert.Equal(t, 800, c.SubtotalCents())
	assert.Nil(t, c.Pending)
}

func TestCart_DeclineReplace(t *testing.T) {
	c := &Cart{}
	assert.NoError(t, c.AddItem("r1", "Warung Satu", pizza(2)))
	assert.ErrorIs(t, c.AddItem("r2", "Warung Dua", Item{ID: "m9", Name: "Burger", PriceCents: 800, Quantity: 1}), ErrDifferentRestaurant)

	c.DeclineReplace()

	// cart tetap utuh persis
	assert.Equal(t, "r1", c.RestaurantID)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 2000, c.SubtotalCents())
	assert.Nil(t, c.Pending)
}

func TestCart_ConfirmReplace_NoPending(t *testing.T) {
	c := &Cart{}
	assert.ErrorIs(t, c.ConfirmReplace(), ErrNoPending)
}

func TestCart_RemoveLastItem_ResetsToEmptyState(t *testing.T) {
	c := &Cart{}
	assert.NoError(t, c.AddItem("r1", "Warung Satu", pizza(1)))

	c.RemoveItem("m1")

	assert.True(t, c.IsEmpty())
	assert.Equal(t, "", c.RestaurantID)
	assert.Equal(t, "", c.RestaurantName)
	assert.Equal(t, 0, c.SubtotalCents())
	assert.Equal(t, 0, c.ItemCount())
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := &Cart{}
	assert.NoError(t, c.AddItem("r1", "Warung Satu", pizza(2)))
	assert.NoError(t, c.AddItem("r1", "Warung Satu", Item{ID: "m2", Name: "Soda", PriceCents: 300, Quantity: 1}))

	c.UpdateQuantity("m1", 5)
	assert.Equal(t, 5300, c.SubtotalCents())

	// qty <= 0 berarti remove
	c.UpdateQuantity("m2", 0)
	assert.Len(t, c.Items, 1)

	c.UpdateQuantity("m1", -1)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "", c.RestaurantID)

	// id yang tidak ada: no-op
	c.UpdateQuantity("nope", 3)
	assert.True(t, c.IsEmpty())
}

func TestCart_Clear(t *testing.T) {
	c := &Cart{}
	assert.NoError(t, c.AddItem("r1", "Warung Satu", pizza(2)))
	assert.ErrorIs(t, c.AddItem("r2", "Warung Dua", Item{ID: "m9", Name: "Burger", PriceCents: 800, Quantity: 1}), ErrDifferentRestaurant)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, "", c.RestaurantID)
	assert.Nil(t, c.Pending)
}
