package orders

// ComputeTotalCents = Σ(price × qty) + delivery fee. Dihitung sekali saat
// order dibuat, dari snapshot items, bukan dari harga menu live.
func ComputeTotalCents(items []OrderItem, deliveryFeeCents int) int {
	total := deliveryFeeCents
	for _, it := range items {
		total += it.PriceCents * it.Quantity
	}
	return total
}
