package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/ariefcatur/go-food-orders.git/internal/cart"
	"github.com/ariefcatur/go-food-orders.git/internal/orders"
)

type fakeCarts struct {
	cart    *cart.Cart
	dropped bool
}

func (f *fakeCarts) Load(ctx context.Context, session string) *cart.Cart {
	if f.cart == nil {
		return &cart.Cart{}
	}
	return f.cart
}
func (f *fakeCarts) Save(ctx context.Context, session string, c *cart.Cart) error { return nil }
func (f *fakeCarts) Drop(ctx context.Context, session string) error {
	f.dropped = true
	return nil
}

type fakeStage struct {
	staged      *DeliveryDetails
	cleared     bool
	lastDisplay string
}

func (f *fakeStage) StageDelivery(ctx context.Context, session string, d DeliveryDetails) error {
	f.staged = &d
	return nil
}
func (f *fakeStage) Delivery(ctx context.Context, session string) (DeliveryDetails, bool) {
	if f.staged == nil {
		return DeliveryDetails{}, false
	}
	return *f.staged, true
}
func (f *fakeStage) ClearDelivery(ctx context.Context, session string) error {
	f.cleared = true
	return nil
}
func (f *fakeStage) SaveLastOrder(ctx context.Context, session, display string) error {
	f.lastDisplay = display
	return nil
}

type fakeAuth struct {
	userID   string
	callback string
}

func (f *fakeAuth) UserID(ctx context.Context, token string) (string, error) {
	if f.userID == "" {
		return "", orders.ErrNotAuthenticated
	}
	return f.userID, nil
}
func (f *fakeAuth) SaveCallback(ctx context.Context, session, url string) error {
	f.callback = url
	return nil
}

type fakeRepo struct {
	in       *orders.CreateOrderInput
	order    *orders.Order
	adjusted bool
	err      error
}

func (f *fakeRepo) CreateOrderTx(ctx context.Context, in orders.CreateOrderInput) (*orders.Order, bool, error) {
	f.in = &in
	if f.err != nil {
		return nil, false, f.err
	}
	return f.order, f.adjusted, nil
}
func (f *fakeRepo) GetRestaurant(ctx context.Context, id string) (*orders.Restaurant, error) {
	return &orders.Restaurant{ID: id, Name: "Warung Satu", Phone: "081234"}, nil
}

type fakePublisher struct {
	published [][]byte
}

func (f *fakePublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	f.published = append(f.published, value)
}

type fakeStatusCache struct {
	ref string
	st  orders.Status
}

func (f *fakeStatusCache) Set(ctx context.Context, ref string, st orders.Status) {
	f.ref, f.st = ref, st
}

func fullCart() *cart.Cart {
	c := &cart.Cart{}
	_ = c.AddItem("r1", "Warung Satu", cart.Item{ID: "m1", Name: "Pizza", PriceCents: 1000, Quantity: 2})
	return c
}

func validDelivery() DeliveryDetails {
	return DeliveryDetails{
		FirstName: "Arief", LastName: "Catur",
		Email: "arief@example.com", Phone: "08123456789",
		Address: "Jl. Sudirman 1", Notes: "lantai 2",
	}
}

func validPayment() PaymentProof {
	return PaymentProof{Method: "MOBILE_MONEY", MobileNumber: "08123456789", ProviderName: "GoPay", ProviderRef: "TX123"}
}

func newTestService(carts *fakeCarts, stage *fakeStage, auth *fakeAuth, repo *fakeRepo) (*Service, *fakePublisher, *fakeStatusCache) {
	pub := &fakePublisher{}
	sc := &fakeStatusCache{}
	return NewService(carts, stage, auth, repo, pub, sc, "food-api-test"), pub, sc
}

func TestBegin_UnauthenticatedSavesCallback(t *testing.T) {
	auth := &fakeAuth{}
	svc, _, _ := newTestService(&fakeCarts{cart: fullCart()}, &fakeStage{}, auth, &fakeRepo{})

	_, err := svc.Begin(context.Background(), "s1", "", "/checkout")
	assert.ErrorIs(t, err, orders.ErrNotAuthenticated)
	assert.Equal(t, "/checkout", auth.callback)
}

func TestBegin_EmptyCart(t *testing.T) {
	svc, _, _ := newTestService(&fakeCarts{}, &fakeStage{}, &fakeAuth{userID: "u1"}, &fakeRepo{})

	uid, err := svc.Begin(context.Background(), "s1", "tok", "/checkout")
	assert.ErrorIs(t, err, orders.ErrCartEmpty)
	assert.Equal(t, "u1", uid)
}

func TestBegin_OK(t *testing.T) {
	svc, _, _ := newTestService(&fakeCarts{cart: fullCart()}, &fakeStage{}, &fakeAuth{userID: "u1"}, &fakeRepo{})

	uid, err := svc.Begin(context.Background(), "s1", "tok", "/checkout")
	assert.NoError(t, err)
	assert.Equal(t, "u1", uid)
}

func TestSubmitDelivery_FieldLevelValidation(t *testing.T) {
	stage := &fakeStage{}
	svc, _, _ := newTestService(&fakeCarts{cart: fullCart()}, stage, &fakeAuth{userID: "u1"}, &fakeRepo{})

	tests := []struct {
		name    string
		mutate  func(*DeliveryDetails)
		badKeys []string
	}{
		{"missing_first_name", func(d *DeliveryDetails) { d.FirstName = "" }, []string{"first_name"}},
		{"missing_last_name", func(d *DeliveryDetails) { d.LastName = "" }, []string{"last_name"}},
		{"bad_email", func(d *DeliveryDetails) { d.Email = "not-an-email" }, []string{"email"}},
		{"short_phone", func(d *DeliveryDetails) { d.Phone = "123" }, []string{"phone"}},
		{"missing_address", func(d *DeliveryDetails) { d.Address = "" }, []string{"address"}},
		{"multiple_fields", func(d *DeliveryDetails) { d.Email = ""; d.Address = "" }, []string{"email", "address"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDelivery()
			tc.mutate(&d)

			err := svc.SubmitDelivery(context.Background(), "s1", d)

			var verr *orders.ValidationError
			assert.ErrorAs(t, err, &verr)
			for _, k := range tc.badKeys {
				assert.Contains(t, verr.Fields, k)
			}
			assert.Nil(t, stage.staged) // gagal validasi = tidak ada yang ke-stage
		})
	}
}

func TestSubmitDelivery_OptionalNotes(t *testing.T) {
	stage := &fakeStage{}
	svc, _, _ := newTestService(&fakeCarts{cart: fullCart()}, stage, &fakeAuth{userID: "u1"}, &fakeRepo{})

	d := validDelivery()
	d.Notes = ""
	assert.NoError(t, svc.SubmitDelivery(context.Background(), "s1", d))
	assert.NotNil(t, stage.staged)
}

func placedOrder() *orders.Order {
	return &orders.Order{
		ID:     "o1",
		Number: 1234,
		Status: orders.StatusNew,
		// pizza 1000x2 + fee 250
		TotalCents:      2250,
		DeliveryAddress: "Jl. Sudirman 1",
		RestaurantID:    "r1",
		CustomerID:      "u1",
		Items: []orders.OrderItem{
			{MenuItemID: "m1", Name: "Pizza", PriceCents: 1000, Quantity: 2},
		},
		CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPlaceOrder_HappyPath(t *testing.T) {
	carts := &fakeCarts{cart: fullCart()}
	stage := &fakeStage{}
	d := validDelivery()
	stage.staged = &d
	repo := &fakeRepo{order: placedOrder()}
	svc, pub, sc := newTestService(carts, stage, &fakeAuth{userID: "u1"}, repo)

	placed, err := svc.PlaceOrder(context.Background(), "s1", "tok", "req-42", validPayment(), 2250)
	assert.NoError(t, err)
	assert.Equal(t, "#1234", placed.OrderNumber)
	assert.Equal(t, 2250, placed.TotalCents)
	assert.False(t, placed.TotalAdjusted)

	// input repo dibangun dari cart + staged delivery
	assert.Equal(t, "u1", repo.in.CustomerID)
	assert.Equal(t, "r1", repo.in.RestaurantID)
	assert.Equal(t, []orders.ItemInput{{MenuItemID: "m1", Qty: 2}}, repo.in.Items)
	assert.Equal(t, "Jl. Sudirman 1", repo.in.DeliveryAddress)
	assert.Equal(t, 2250, repo.in.ClientTotalCents)

	// post-commit: cart bersih, staging bersih, last order tersimpan
	assert.True(t, carts.dropped)
	assert.True(t, stage.cleared)
	assert.Equal(t, "#1234", stage.lastDisplay)

	// status cache keyed by numeric ref
	assert.Equal(t, "1234", sc.ref)
	assert.Equal(t, orders.StatusNew, sc.st)

	// satu event order.placed dipublish, trace id request ikut di envelope
	assert.Len(t, pub.published, 1)
	var env orders.Envelope
	assert.NoError(t, json.Unmarshal(pub.published[0], &env))
	assert.Equal(t, orders.EventOrderPlaced, env.EventType)
	assert.Equal(t, "req-42", env.TraceID)
	assert.Equal(t, "o1", env.CorrelationID)
}

func TestPlaceOrder_ServerTotalWins(t *testing.T) {
	carts := &fakeCarts{cart: fullCart()}
	stage := &fakeStage{}
	d := validDelivery()
	stage.staged = &d
	repo := &fakeRepo{order: placedOrder(), adjusted: true}
	svc, _, _ := newTestService(carts, stage, &fakeAuth{userID: "u1"}, repo)

	// client kirim total basi; order tetap jadi, nilai server yang dipakai
	placed, err := svc.PlaceOrder(context.Background(), "s1", "tok", "", validPayment(), 1999)
	assert.NoError(t, err)
	assert.True(t, placed.TotalAdjusted)
	assert.Equal(t, 2250, placed.TotalCents)
}

func TestPlaceOrder_PersistenceFailureLeavesSessionIntact(t *testing.T) {
	carts := &fakeCarts{cart: fullCart()}
	stage := &fakeStage{}
	d := validDelivery()
	stage.staged = &d
	repo := &fakeRepo{err: errors.New("tx rollback")}
	svc, pub, _ := newTestService(carts, stage, &fakeAuth{userID: "u1"}, repo)

	placed, err := svc.PlaceOrder(context.Background(), "s1", "tok", "", validPayment(), 2250)
	assert.Error(t, err)
	assert.Nil(t, placed)

	// commit gagal: cart & staging jangan disentuh, event jangan keluar
	assert.False(t, carts.dropped)
	assert.False(t, stage.cleared)
	assert.Empty(t, stage.lastDisplay)
	assert.Empty(t, pub.published)
}

func TestPlaceOrder_Preconditions(t *testing.T) {
	d := validDelivery()

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, _ := newTestService(&fakeCarts{cart: fullCart()}, &fakeStage{staged: &d}, &fakeAuth{}, &fakeRepo{})
		_, err := svc.PlaceOrder(context.Background(), "s1", "", "", validPayment(), 2250)
		assert.ErrorIs(t, err, orders.ErrNotAuthenticated)
	})

	t.Run("empty_cart", func(t *testing.T) {
		svc, _, _ := newTestService(&fakeCarts{}, &fakeStage{staged: &d}, &fakeAuth{userID: "u1"}, &fakeRepo{})
		_, err := svc.PlaceOrder(context.Background(), "s1", "tok", "", validPayment(), 2250)
		assert.ErrorIs(t, err, orders.ErrCartEmpty)
	})

	t.Run("delivery_not_staged", func(t *testing.T) {
		svc, _, _ := newTestService(&fakeCarts{cart: fullCart()}, &fakeStage{}, &fakeAuth{userID: "u1"}, &fakeRepo{})
		_, err := svc.PlaceOrder(context.Background(), "s1", "tok", "", validPayment(), 2250)
		assert.ErrorIs(t, err, orders.ErrDeliveryNotStaged)
	})

	t.Run("bad_payment_method", func(t *testing.T) {
		svc, _, _ := newTestService(&fakeCarts{cart: fullCart()}, &fakeStage{staged: &d}, &fakeAuth{userID: "u1"}, &fakeRepo{})
		p := validPayment()
		p.Method = "CARD"
		_, err := svc.PlaceOrder(context.Background(), "s1", "tok", "", p, 2250)
		var verr *orders.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "method")
	})
}
