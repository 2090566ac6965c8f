package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-food-orders.git/internal/auth"
	"github.com/ariefcatur/go-food-orders.git/internal/checkout"
)

type CheckoutHandler struct {
	Svc      *checkout.Service
	Sessions *auth.Sessions
}

func (h *CheckoutHandler) Register(r *chi.Mux) {
	r.Post("/checkout/begin", h.begin)
	r.Post("/checkout/delivery", h.submitDelivery)
	r.Post("/checkout/place", h.placeOrder)
	r.Get("/auth/callback", h.consumeCallback)
}

// begin runs the mount-time precondition checks: auth dan cart non-empty.
// 401/409 + redirect hint kalau gagal, supaya frontend tinggal ikut.
func (h *CheckoutHandler) begin(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	var req struct {
		CallbackURL string `json:"callback_url"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.CallbackURL == "" {
		req.CallbackURL = "/checkout"
	}

	uid, err := h.Svc.Begin(r.Context(), session, bearerToken(r), req.CallbackURL)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_id": uid})
}

func (h *CheckoutHandler) submitDelivery(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	var d checkout.DeliveryDetails
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := h.Svc.SubmitDelivery(r.Context(), session, d); err != nil {
		writeErr(w, err)
		return
	}
	// details ke-stage, UI lanjut ke step payment
	writeJSON(w, http.StatusOK, map[string]string{"next": "payment"})
}

func (h *CheckoutHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	var req struct {
		Payment    checkout.PaymentProof `json:"payment"`
		TotalCents int                   `json:"total_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	placed, err := h.Svc.PlaceOrder(r.Context(), session, bearerToken(r), r.Header.Get("X-Request-Id"), req.Payment, req.TotalCents)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

// consumeCallback hands the stored post-login target back exactly once.
func (h *CheckoutHandler) consumeCallback(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	url, ok := h.Sessions.ConsumeCallback(r.Context(), session)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
