// Package notify turns committed order events into the two notification
// payloads: confirmation buat customer, alert buat resto. Best-effort by
// contract — kegagalan kirim tidak pernah menyentuh order yang sudah commit.
package notify

import (
	"context"
	"encoding/json"
	"log"

	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-food-orders.git/internal/kafka"
	"github.com/ariefcatur/go-food-orders.git/internal/orders"
)

type Deduper interface {
	Seen(ctx context.Context, id string) bool
	Mark(ctx context.Context, id string)
}

type Service struct {
	Dedup  Deduper
	Sender Sender
}

// CustomerConfirmation is what the customer sees right after placing.
type CustomerConfirmation struct {
	OrderNumber     string              `json:"order_number"`
	RestaurantName  string              `json:"restaurant_name"`
	Items           []orders.PlacedItem `json:"items"`
	TotalCents      int                 `json:"total_cents"`
	DeliveryAddress string              `json:"delivery_address"`
	PaymentMethod   string              `json:"payment_method"`
}

// RestaurantAlert is what the restaurant needs to start preparing.
type RestaurantAlert struct {
	OrderNumber     string              `json:"order_number"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	DeliveryAddress string              `json:"delivery_address"`
	CustomerNotes   string              `json:"customer_notes,omitempty"`
	Items           []orders.PlacedItem `json:"items"`
	TotalCents      int                 `json:"total_cents"`
	PaymentMethod   string              `json:"payment_method"`
	MobileNumber    string              `json:"mobile_number,omitempty"`
}

// HandleOrderPlaced dipasang sebagai handler consumer.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil // ignore
	}
	if s.Dedup.Seen(ctx, env.EventID) {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	// dua pesan dari snapshot yang sama; gagal kirim cukup di-log
	if err := s.Sender.Send(ctx, TemplateCustomerConfirmation, p.CustomerEmail, BuildCustomerConfirmation(p)); err != nil {
		log.Printf("notify customer %s order=%s: %v", p.CustomerEmail, p.OrderNumber, err)
	}
	if err := s.Sender.Send(ctx, TemplateRestaurantAlert, p.RestaurantPhone, BuildRestaurantAlert(p)); err != nil {
		log.Printf("notify restaurant %s order=%s: %v", p.RestaurantID, p.OrderNumber, err)
	}

	s.Dedup.Mark(ctx, env.EventID)
	return nil
}

func BuildCustomerConfirmation(p orders.OrderPlacedPayload) CustomerConfirmation {
	return CustomerConfirmation{
		OrderNumber:     p.OrderNumber,
		RestaurantName:  p.RestaurantName,
		Items:           p.Items,
		TotalCents:      p.TotalCents,
		DeliveryAddress: p.DeliveryAddress,
		PaymentMethod:   p.PaymentMethod,
	}
}

func BuildRestaurantAlert(p orders.OrderPlacedPayload) RestaurantAlert {
	return RestaurantAlert{
		OrderNumber:     p.OrderNumber,
		CustomerName:    p.CustomerName,
		CustomerPhone:   p.CustomerPhone,
		DeliveryAddress: p.DeliveryAddress,
		CustomerNotes:   p.CustomerNotes,
		Items:           p.Items,
		TotalCents:      p.TotalCents,
		PaymentMethod:   p.PaymentMethod,
		MobileNumber:    p.MobileNumber,
	}
}
