package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemInput struct {
	MenuItemID string `json:"menu_item_id"`
	Qty        int    `json:"qty"`
}

type PaymentInput struct {
	Method       string `json:"method"`
	MobileNumber string `json:"mobile_number"`
	ProviderName string `json:"provider_name"`
	ProviderRef  string `json:"provider_ref,omitempty"`
}

type CreateOrderInput struct {
	CustomerID       string
	RestaurantID     string
	Items            []ItemInput
	ClientTotalCents int
	DeliveryAddress  string
	CustomerNotes    string
	Payment          PaymentInput
}

type Repo struct{ DB *pgxpool.Pool }

// CreateOrderTx commits order + order_items snapshot + payment_transaction
// dalam satu transaksi: semua masuk atau tidak sama sekali. Order setengah
// jadi (order tanpa payment, atau sebaliknya) tidak boleh pernah kelihatan.
//
// Total dihitung ulang dari harga menu_items di DB plus delivery fee resto
// (hindari trust total dari client). adjusted=true kalau total client beda
// dengan hitungan server; nilai server yang dipakai untuk persist.
func (r *Repo) CreateOrderTx(ctx context.Context, in CreateOrderInput) (o *Order, adjusted bool, err error) {
	if len(in.Items) == 0 {
		return nil, false, ErrCartEmpty
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var feeCents int
	err = tx.QueryRow(ctx, `SELECT delivery_fee_cents FROM restaurants WHERE id=$1`, in.RestaurantID).Scan(&feeCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, ErrRestaurantNotFound
	} else if err != nil {
		return nil, false, err
	}

	// harga + nama dari DB untuk snapshot, dan pastikan item milik resto ini
	ids := make([]any, 0, len(in.Items))
	params := ""
	for i, it := range in.Items {
		if i > 0 {
			params += ","
		}
		params += fmt.Sprintf("$%d", i+2)
		ids = append(ids, it.MenuItemID)
	}
	args := append([]any{in.RestaurantID}, ids...)
	rows, err := tx.Query(ctx, `SELECT id, name, price_cents FROM menu_items
	                            WHERE restaurant_id=$1 AND id IN (`+params+`)`, args...)
	if err != nil {
		return nil, false, err
	}
	type priced struct {
		name  string
		price int
	}
	menu := map[string]priced{}
	for rows.Next() {
		var id string
		var p priced
		if err := rows.Scan(&id, &p.name, &p.price); err != nil {
			rows.Close()
			return nil, false, err
		}
		menu[id] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	items := make([]OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		p, ok := menu[it.MenuItemID]
		if !ok {
			return nil, false, fmt.Errorf("%w: %s", ErrMenuItemNotFound, it.MenuItemID)
		}
		if it.Qty <= 0 {
			return nil, false, fmt.Errorf("invalid qty for item %s", it.MenuItemID)
		}
		items = append(items, OrderItem{
			ID:         uuid.NewString(),
			MenuItemID: it.MenuItemID,
			Name:       p.name,
			PriceCents: p.price,
			Quantity:   it.Qty,
		})
	}
	total := ComputeTotalCents(items, feeCents)
	adjusted = total != in.ClientTotalCents

	var number int64
	if err := tx.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&number); err != nil {
		return nil, false, fmt.Errorf("order number: %w", err)
	}

	orderID := uuid.NewString()
	o = &Order{
		ID:              orderID,
		Number:          number,
		Status:          StatusNew,
		TotalCents:      total,
		DeliveryAddress: in.DeliveryAddress,
		CustomerNotes:   in.CustomerNotes,
		RestaurantID:    in.RestaurantID,
		CustomerID:      in.CustomerID,
		Items:           items,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, number, customer_id, restaurant_id, status, total_cents, delivery_address, customer_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		orderID, number, in.CustomerID, in.RestaurantID, string(StatusNew), total, in.DeliveryAddress, in.CustomerNotes,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, false, err
	}

	for i := range items {
		items[i].OrderID = orderID
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(id, order_id, menu_item_id, name, price_cents, qty)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			items[i].ID, orderID, items[i].MenuItemID, items[i].Name, items[i].PriceCents, items[i].Quantity,
		); err != nil {
			return nil, false, err
		}
	}

	pay := &PaymentTransaction{
		ID:           uuid.NewString(),
		OrderID:      orderID,
		AmountCents:  total,
		Method:       in.Payment.Method,
		Status:       PaymentStatusPending,
		MobileNumber: in.Payment.MobileNumber,
		ProviderName: in.Payment.ProviderName,
		ProviderRef:  in.Payment.ProviderRef,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO payment_transactions(id, order_id, amount_cents, method, status, mobile_number, provider_name, provider_ref)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		pay.ID, orderID, pay.AmountCents, pay.Method, pay.Status, pay.MobileNumber, pay.ProviderName, pay.ProviderRef,
	).Scan(&pay.CreatedAt)
	if err != nil {
		return nil, false, err
	}
	o.Payment = pay

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return o, adjusted, nil
}

// GetOrderByNumber is the tracking read path, keyed by the numeric part of
// the display number.
func (r *Repo) GetOrderByNumber(ctx context.Context, number int64) (*Order, error) {
	var o Order
	var status string
	err := r.DB.QueryRow(ctx, `
		SELECT id, number, customer_id, restaurant_id, status, total_cents,
		       delivery_address, customer_notes, COALESCE(cancellation_reason, ''),
		       created_at, updated_at
		FROM orders WHERE number=$1`, number,
	).Scan(&o.ID, &o.Number, &o.CustomerID, &o.RestaurantID, &status, &o.TotalCents,
		&o.DeliveryAddress, &o.CustomerNotes, &o.CancellationReason, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	} else if err != nil {
		return nil, &TransientError{Err: err}
	}
	o.Status = Status(status)

	rows, err := r.DB.Query(ctx, `
		SELECT id, menu_item_id, name, price_cents, qty
		FROM order_items WHERE order_id=$1 ORDER BY name`, o.ID)
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		it := OrderItem{OrderID: o.ID}
		if err := rows.Scan(&it.ID, &it.MenuItemID, &it.Name, &it.PriceCents, &it.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, &TransientError{Err: err}
	}

	var pay PaymentTransaction
	err = r.DB.QueryRow(ctx, `
		SELECT id, order_id, amount_cents, method, status,
		       COALESCE(mobile_number,''), COALESCE(provider_name,''), COALESCE(provider_ref,''), created_at
		FROM payment_transactions WHERE order_id=$1`, o.ID,
	).Scan(&pay.ID, &pay.OrderID, &pay.AmountCents, &pay.Method, &pay.Status,
		&pay.MobileNumber, &pay.ProviderName, &pay.ProviderRef, &pay.CreatedAt)
	if err == nil {
		o.Payment = &pay
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, &TransientError{Err: err}
	}
	return &o, nil
}

// UpdateStatus advances an order along the fixed sequence (or cancels it).
// Baris order di-lock dulu supaya dua transisi barengan tidak saling tabrak.
func (r *Repo) UpdateStatus(ctx context.Context, number int64, to Status, reason string) (orderID string, from Status, err error) {
	if !to.Valid() {
		return "", "", ErrInvalidTransition
	}
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur string
	err = tx.QueryRow(ctx, `SELECT id, status FROM orders WHERE number=$1 FOR UPDATE`, number).Scan(&orderID, &cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrOrderNotFound
	} else if err != nil {
		return "", "", err
	}
	from = Status(cur)
	if !CanTransition(from, to) {
		return orderID, from, ErrInvalidTransition
	}

	if to == StatusCancelled {
		_, err = tx.Exec(ctx, `UPDATE orders SET status=$2, cancellation_reason=$3, updated_at=now() WHERE id=$1`,
			orderID, string(to), reason)
	} else {
		_, err = tx.Exec(ctx, `UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, orderID, string(to))
	}
	if err != nil {
		return orderID, from, err
	}
	return orderID, from, tx.Commit(ctx)
}

func (r *Repo) GetRestaurant(ctx context.Context, id string) (*Restaurant, error) {
	var rest Restaurant
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, phone, address, COALESCE(image_url,''), delivery_fee_cents,
		       COALESCE(delivery_time_range,''), created_at, updated_at
		FROM restaurants WHERE id=$1`, id,
	).Scan(&rest.ID, &rest.Name, &rest.Phone, &rest.Address, &rest.ImageURL,
		&rest.DeliveryFeeCents, &rest.DeliveryTimeRange, &rest.CreatedAt, &rest.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	} else if err != nil {
		return nil, &TransientError{Err: err}
	}
	return &rest, nil
}

func (r *Repo) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, phone, address, COALESCE(image_url,''), delivery_fee_cents,
		       COALESCE(delivery_time_range,''), created_at, updated_at
		FROM restaurants ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		var rest Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Phone, &rest.Address, &rest.ImageURL,
			&rest.DeliveryFeeCents, &rest.DeliveryTimeRange, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

func (r *Repo) ListMenu(ctx context.Context, restaurantID string) ([]MenuItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, restaurant_id, name, COALESCE(description,''), price_cents,
		       COALESCE(category,''), COALESCE(image_url,''), available, created_at, updated_at
		FROM menu_items WHERE restaurant_id=$1 AND available ORDER BY category, name`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.PriceCents,
			&m.Category, &m.ImageURL, &m.Available, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
