// Package tracker is the order-status read path: lookup by display number,
// progress/step derivation dari urutan enum, dan estimasi waktu antar.
package tracker

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ariefcatur/go-food-orders.git/internal/orders"
)

// DefaultDeliveryRange dipakai kalau resto tidak punya range, atau range-nya
// tidak bisa diparse.
const DefaultDeliveryRange = "30-45"

type Reader interface {
	GetOrderByNumber(ctx context.Context, number int64) (*orders.Order, error)
	GetRestaurant(ctx context.Context, id string) (*orders.Restaurant, error)
}

type Step struct {
	Status  orders.Status `json:"status"`
	Reached bool          `json:"reached"`
}

// Result keeps the three lookup outcomes distinguishable: not-found is an
// error, transient failure is an error, dan "order ada tapi resto-nya sudah
// tidak ada" adalah sukses dengan RestaurantMissing=true.
type Result struct {
	Order             *orders.Order      `json:"order"`
	Restaurant        *orders.Restaurant `json:"restaurant,omitempty"`
	RestaurantMissing bool               `json:"restaurant_missing,omitempty"`
	Cancelled         bool               `json:"cancelled"`
	Progress          int                `json:"progress"` // 0 untuk cancelled
	Steps             []Step             `json:"steps"`
	EstimatedDelivery string             `json:"estimated_delivery,omitempty"`
}

type Tracker struct {
	Repo Reader
}

// ParseDisplayNumber accepts "#1234" or "1234".
func ParseDisplayNumber(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, orders.ErrOrderNotFound
	}
	return n, nil
}

// Track looks the order up by display number. Kegagalan transient dicoba
// ulang sekali — tidak lebih, biar polling page tidak spin selamanya.
func (t *Tracker) Track(ctx context.Context, display string) (*Result, error) {
	number, err := ParseDisplayNumber(display)
	if err != nil {
		return nil, err
	}

	o, err := t.Repo.GetOrderByNumber(ctx, number)
	if err != nil && orders.IsTransient(err) && ctx.Err() == nil {
		o, err = t.Repo.GetOrderByNumber(ctx, number)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		Order:     o,
		Cancelled: o.Status == orders.StatusCancelled,
	}
	if pct, ok := orders.ProgressPercent(o.Status); ok {
		res.Progress = pct
	}
	for _, st := range orders.Steps() {
		res.Steps = append(res.Steps, Step{Status: st, Reached: orders.StepReached(st, o.Status)})
	}

	rng := ""
	rest, rerr := t.Repo.GetRestaurant(ctx, o.RestaurantID)
	if rerr != nil && orders.IsTransient(rerr) && ctx.Err() == nil {
		rest, rerr = t.Repo.GetRestaurant(ctx, o.RestaurantID)
	}
	switch {
	case rerr == nil:
		res.Restaurant = rest
		rng = rest.DeliveryTimeRange
	case errors.Is(rerr, orders.ErrRestaurantNotFound):
		// resto sudah dihapus: order tetap tampil tanpa data resto
		res.RestaurantMissing = true
	default:
		// gagal resolve != hilang; biar caller yang render error state
		return nil, rerr
	}
	if !o.Status.Terminal() {
		res.EstimatedDelivery = FormatEstimatedDelivery(o.CreatedAt, rng)
	}
	return res, nil
}

// FormatEstimatedDelivery renders the "min-max" minute range as a clock
// window relative to order creation, e.g. "12:30 PM - 12:45 PM".
func FormatEstimatedDelivery(createdAt time.Time, rng string) string {
	lo, hi, ok := parseRange(rng)
	if !ok {
		lo, hi, _ = parseRange(DefaultDeliveryRange)
	}
	from := createdAt.Add(time.Duration(lo) * time.Minute)
	to := createdAt.Add(time.Duration(hi) * time.Minute)
	return from.Format("3:04 PM") + " - " + to.Format("3:04 PM")
}

func parseRange(s string) (lo, hi int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || lo <= 0 || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}
