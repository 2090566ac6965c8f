// Package cart holds the single-restaurant cart state machine. The cart is
// owned explicitly by whoever loads it from the Store, mutated through the
// methods here, and written back after every mutation; there is no ambient
// shared cart.
package cart

import "errors"

var (
	// ErrDifferentRestaurant: add dari resto lain tidak pernah di-merge
	// diam-diam. Item-nya di-stage sebagai pending replacement dan user
	// harus confirm dulu.
	ErrDifferentRestaurant = errors.New("cart belongs to a different restaurant")

	ErrInvalidItem = errors.New("invalid cart item")
	ErrNoPending   = errors.New("no pending replacement")
)

// Item is one line in the cart. Price is in cents, snapshotted from the menu
// at the moment the user added it.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	ImageURL   string `json:"image_url,omitempty"`
}

// Replacement is the staged cross-restaurant add waiting for an explicit
// confirm/decline. Propose -> confirm -> commit, atau decline -> abort.
type Replacement struct {
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Item           Item   `json:"item"`
}

// Cart: semua item milik satu restaurant. Empty cart berarti RestaurantID
// kosong dan Items kosong. Subtotal selalu dihitung dari items, tidak pernah
// disimpan terpisah.
type Cart struct {
	RestaurantID   string       `json:"restaurant_id,omitempty"`
	RestaurantName string       `json:"restaurant_name,omitempty"`
	Items          []Item       `json:"items"`
	Pending        *Replacement `json:"pending,omitempty"`
}

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

func (c *Cart) SubtotalCents() int {
	total := 0
	for _, it := range c.Items {
		total += it.PriceCents * it.Quantity
	}
	return total
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// AddItem inserts (or merges quantity for an existing id) when the cart is
// empty or already scoped to restaurantID. For a different restaurant it
// stages the add and returns ErrDifferentRestaurant.
func (c *Cart) AddItem(restaurantID, restaurantName string, it Item) error {
	if it.ID == "" || it.Quantity < 1 || it.PriceCents < 0 {
		return ErrInvalidItem
	}
	if !c.IsEmpty() && c.RestaurantID != restaurantID {
		c.Pending = &Replacement{RestaurantID: restaurantID, RestaurantName: restaurantName, Item: it}
		return ErrDifferentRestaurant
	}
	if c.IsEmpty() {
		c.RestaurantID = restaurantID
		c.RestaurantName = restaurantName
	}
	for i := range c.Items {
		if c.Items[i].ID == it.ID {
			c.Items[i].Quantity += it.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, it)
	return nil
}

// ConfirmReplace commits the staged replacement: cart lama dibuang, cart
// di-seed ulang dengan item resto baru.
func (c *Cart) ConfirmReplace() error {
	if c.Pending == nil {
		return ErrNoPending
	}
	p := *c.Pending
	c.Clear()
	return c.AddItem(p.RestaurantID, p.RestaurantName, p.Item)
}

// DeclineReplace drops the staged replacement, cart tetap apa adanya.
func (c *Cart) DeclineReplace() {
	c.Pending = nil
}

func (c *Cart) RemoveItem(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	if c.IsEmpty() {
		// item terakhir hilang -> balik ke empty state total
		c.RestaurantID = ""
		c.RestaurantName = ""
		c.Items = nil
	}
}

// UpdateQuantity sets the quantity for id; qty <= 0 removes the item.
func (c *Cart) UpdateQuantity(id string, qty int) {
	if qty <= 0 {
		c.RemoveItem(id)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = qty
			return
		}
	}
}

// Clear resets to empty state unconditionally (sukses place order, atau user
// buang cart lintas-resto).
func (c *Cart) Clear() {
	*c = Cart{}
}
