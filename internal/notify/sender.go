package notify

import (
	"context"
	"log"
)

const (
	TemplateCustomerConfirmation = "order-confirmation"
	TemplateRestaurantAlert      = "new-order-alert"
)

// Sender is the notification collaborator. Delivery channel (email, SMS,
// push) urusan implementasi di baliknya.
type Sender interface {
	Send(ctx context.Context, template, recipient string, payload any) error
}

// LogSender cuma nge-log. Placeholder selama era mobile-money manual,
// sebelum ada mailer/SMS gateway beneran.
type LogSender struct{}

func (LogSender) Send(_ context.Context, template, recipient string, payload any) error {
	log.Printf("notify template=%s to=%s payload=%+v", template, recipient, payload)
	return nil
}
