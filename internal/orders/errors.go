package orders

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrDeliveryNotStaged  = errors.New("delivery details not submitted")
)

// ValidationError carries field-level messages. Handled at the component
// boundary and rendered inline; nothing gets persisted when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// TransientError marks a failure worth exactly one retry (network blips,
// pool exhaustion). Anything else surfaces immediately.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return fmt.Sprintf("transient: %v", e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
