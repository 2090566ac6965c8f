package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/skip2/go-qrcode"

	"github.com/ariefcatur/go-food-orders.git/internal/checkout"
	kafkax "github.com/ariefcatur/go-food-orders.git/internal/kafka"
	"github.com/ariefcatur/go-food-orders.git/internal/orders"
	"github.com/ariefcatur/go-food-orders.git/internal/tracker"
)

type OrdersHandler struct {
	Repo          *orders.Repo
	Tracker       *tracker.Tracker
	Cache         *tracker.Cache
	Stage         *checkout.RedisStage
	Producer      *kafkax.Producer // topic order.status.changed
	Service       string
	PublicBaseURL string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Get("/orders/last", h.lastOrder)
	r.Get("/orders/{number}", h.track)
	r.Get("/orders/{number}/status", h.status)
	r.Get("/orders/{number}/qr", h.qr)
	r.Post("/orders/{number}/status", h.updateStatus)
}

// lastOrder returns the display number the session placed most recently;
// confirmation page pakai ini buat mulai polling.
func (h *OrdersHandler) lastOrder(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	display, ok := h.Stage.LastOrder(r.Context(), session)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no recent order"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"order_number": display})
}

func (h *OrdersHandler) track(w http.ResponseWriter, r *http.Request) {
	res, err := h.Tracker.Track(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// status is the cheap polling endpoint: coba cache, fallback DB (biar GET
// berulang dari tracking page murah).
func (h *OrdersHandler) status(w http.ResponseWriter, r *http.Request) {
	number, err := tracker.ParseDisplayNumber(chi.URLParam(r, "number"))
	if err != nil {
		writeErr(w, err)
		return
	}
	ref := strconv.FormatInt(number, 10)

	if st, ok := h.Cache.Get(r.Context(), ref); ok {
		h.writeStatus(w, st)
		return
	}
	o, err := h.Repo.GetOrderByNumber(r.Context(), number)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.Cache.Set(r.Context(), ref, o.Status)
	h.writeStatus(w, o.Status)
}

func (h *OrdersHandler) writeStatus(w http.ResponseWriter, st orders.Status) {
	pct, _ := orders.ProgressPercent(st)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    st,
		"progress":  pct,
		"cancelled": st == orders.StatusCancelled,
	})
}

// updateStatus is the restaurant-side transition: maju satu step atau cancel
// dengan alasan. Transisi mundur ditolak di repo.
func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	number, err := tracker.ParseDisplayNumber(chi.URLParam(r, "number"))
	if err != nil {
		writeErr(w, err)
		return
	}
	var req struct {
		Status orders.Status `json:"status"`
		Reason string        `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Status == orders.StatusCancelled && req.Reason == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cancellation requires a reason"})
		return
	}

	orderID, from, err := h.Repo.UpdateStatus(r.Context(), number, req.Status, req.Reason)
	if err != nil {
		writeErr(w, err)
		return
	}

	ref := strconv.FormatInt(number, 10)
	h.Cache.Set(r.Context(), ref, req.Status)

	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: orderID,
		Payload: kafkax.MustMarshal(orders.StatusChangedPayload{
			OrderID:     orderID,
			OrderNumber: "#" + ref,
			From:        from,
			To:          req.Status,
			Reason:      req.Reason,
			ChangedAt:   time.Now().UTC(),
		}),
	}
	h.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	writeJSON(w, http.StatusOK, map[string]any{"from": from, "to": req.Status})
}

// qr renders the public tracking URL as a PNG, buat struk/kemasan.
func (h *OrdersHandler) qr(w http.ResponseWriter, r *http.Request) {
	number, err := tracker.ParseDisplayNumber(chi.URLParam(r, "number"))
	if err != nil {
		writeErr(w, err)
		return
	}
	// pastikan ordernya ada dulu
	if _, err := h.Repo.GetOrderByNumber(r.Context(), number); err != nil {
		writeErr(w, err)
		return
	}
	url := h.PublicBaseURL + "/track/" + strconv.FormatInt(number, 10)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
