package checkout

import (
	"context"
	"errors"
	"log"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-food-orders.git/internal/cart"
	kafkax "github.com/ariefcatur/go-food-orders.git/internal/kafka"
	"github.com/ariefcatur/go-food-orders.git/internal/orders"
)

type CartStore interface {
	Load(ctx context.Context, session string) *cart.Cart
	Save(ctx context.Context, session string, c *cart.Cart) error
	Drop(ctx context.Context, session string) error
}

type Stage interface {
	StageDelivery(ctx context.Context, session string, d DeliveryDetails) error
	Delivery(ctx context.Context, session string) (DeliveryDetails, bool)
	ClearDelivery(ctx context.Context, session string) error
	SaveLastOrder(ctx context.Context, session, display string) error
}

type Authenticator interface {
	UserID(ctx context.Context, token string) (string, error)
	SaveCallback(ctx context.Context, session, url string) error
}

type OrderCreator interface {
	CreateOrderTx(ctx context.Context, in orders.CreateOrderInput) (*orders.Order, bool, error)
	GetRestaurant(ctx context.Context, id string) (*orders.Restaurant, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type StatusCacher interface {
	// ref adalah bagian numerik dari display number
	Set(ctx context.Context, ref string, st orders.Status)
}

// Service is the checkout coordinator plus the order-creation orchestration:
// precondition checks, delivery form, dan hand-off ke repo transaksional.
type Service struct {
	Carts       CartStore
	Staged      Stage
	Auth        Authenticator
	Repo        OrderCreator
	Producer    Publisher
	StatusCache StatusCacher
	ServiceName string

	validate *validator.Validate
}

func NewService(carts CartStore, staged Stage, auth Authenticator, repo OrderCreator,
	producer Publisher, statusCache StatusCacher, serviceName string) *Service {
	v := validator.New()
	// pesan error pakai nama field dari json tag, bukan nama Go
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{
		Carts:       carts,
		Staged:      staged,
		Auth:        auth,
		Repo:        repo,
		Producer:    producer,
		StatusCache: statusCache,
		ServiceName: serviceName,
		validate:    v,
	}
}

// Begin checks the checkout preconditions. Unauthenticated: currentURL masuk
// callback slot lalu ErrNotAuthenticated (handler yang redirect ke sign-in).
// Empty cart: ErrCartEmpty (redirect ke listing).
func (s *Service) Begin(ctx context.Context, session, token, currentURL string) (string, error) {
	uid, err := s.Auth.UserID(ctx, token)
	if errors.Is(err, orders.ErrNotAuthenticated) {
		if cbErr := s.Auth.SaveCallback(ctx, session, currentURL); cbErr != nil {
			log.Printf("save callback: %v", cbErr)
		}
		return "", orders.ErrNotAuthenticated
	} else if err != nil {
		return "", err
	}
	if s.Carts.Load(ctx, session).IsEmpty() {
		return uid, orders.ErrCartEmpty
	}
	return uid, nil
}

// SubmitDelivery validates the form and stages it for the payment step.
// Gagal validasi = tidak ada yang tersimpan, sama sekali.
func (s *Service) SubmitDelivery(ctx context.Context, session string, d DeliveryDetails) error {
	if err := s.check(d); err != nil {
		return err
	}
	return s.Staged.StageDelivery(ctx, session, d)
}

func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = msgFor(fe)
	}
	return &orders.ValidationError{Fields: fields}
}

func msgFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// PlaceOrder turns the staged cart + delivery + payment proof into a
// persisted order. Commit-nya atomik di repo; semua langkah setelah commit
// (cache, event, clear cart) best-effort dan tidak pernah membatalkan order.
func (s *Service) PlaceOrder(ctx context.Context, session, token, traceID string, p PaymentProof, clientTotalCents int) (*PlacedOrder, error) {
	uid, err := s.Auth.UserID(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.check(p); err != nil {
		return nil, err
	}

	c := s.Carts.Load(ctx, session)
	if c.IsEmpty() {
		return nil, orders.ErrCartEmpty
	}
	d, ok := s.Staged.Delivery(ctx, session)
	if !ok {
		return nil, orders.ErrDeliveryNotStaged
	}

	items := make([]orders.ItemInput, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, orders.ItemInput{MenuItemID: it.ID, Qty: it.Quantity})
	}

	o, adjusted, err := s.Repo.CreateOrderTx(ctx, orders.CreateOrderInput{
		CustomerID:       uid,
		RestaurantID:     c.RestaurantID,
		Items:            items,
		ClientTotalCents: clientTotalCents,
		DeliveryAddress:  d.Address,
		CustomerNotes:    d.Notes,
		Payment: orders.PaymentInput{
			Method:       p.Method,
			MobileNumber: p.MobileNumber,
			ProviderName: p.ProviderName,
			ProviderRef:  p.ProviderRef,
		},
	})
	if err != nil {
		return nil, err
	}

	// ---- order sudah committed, sisanya jangan sampai menggagalkan ----

	if s.StatusCache != nil {
		s.StatusCache.Set(ctx, strconv.FormatInt(o.Number, 10), o.Status)
	}
	s.publishPlaced(ctx, o, c, d, p, traceID)
	if err := s.Staged.SaveLastOrder(ctx, session, o.DisplayNumber()); err != nil {
		log.Printf("save last order %s: %v", o.DisplayNumber(), err)
	}
	if err := s.Carts.Drop(ctx, session); err != nil {
		log.Printf("clear cart for session: %v", err)
	}
	if err := s.Staged.ClearDelivery(ctx, session); err != nil {
		log.Printf("clear staged delivery: %v", err)
	}

	return &PlacedOrder{
		OrderID:       o.ID,
		OrderNumber:   o.DisplayNumber(),
		TotalCents:    o.TotalCents,
		TotalAdjusted: adjusted,
	}, nil
}

func (s *Service) publishPlaced(ctx context.Context, o *orders.Order, c *cart.Cart, d DeliveryDetails, p PaymentProof, traceID string) {
	phone := ""
	if rest, err := s.Repo.GetRestaurant(ctx, o.RestaurantID); err == nil {
		phone = rest.Phone
	}

	placed := make([]orders.PlacedItem, 0, len(o.Items))
	for _, it := range o.Items {
		placed = append(placed, orders.PlacedItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Qty:        it.Quantity,
		})
	}
	payload := orders.OrderPlacedPayload{
		OrderID:         o.ID,
		OrderNumber:     o.DisplayNumber(),
		RestaurantID:    o.RestaurantID,
		RestaurantName:  c.RestaurantName,
		RestaurantPhone: phone,
		CustomerID:      o.CustomerID,
		CustomerName:    strings.TrimSpace(d.FirstName + " " + d.LastName),
		CustomerEmail:   d.Email,
		CustomerPhone:   d.Phone,
		DeliveryAddress: o.DeliveryAddress,
		CustomerNotes:   o.CustomerNotes,
		Items:           placed,
		TotalCents:      o.TotalCents,
		PaymentMethod:   p.Method,
		MobileNumber:    p.MobileNumber,
		CreatedAt:       o.CreatedAt,
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       traceID,
		CorrelationID: o.ID,
		Payload:       kafkax.MustMarshal(payload),
	}
	s.Producer.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
