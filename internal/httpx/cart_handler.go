package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-food-orders.git/internal/cart"
)

type CartHandler struct {
	Store *cart.Store
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Get("/cart", h.get)
	r.Delete("/cart", h.clear)
	r.Post("/cart/items", h.addItem)
	r.Patch("/cart/items/{id}", h.updateQuantity)
	r.Delete("/cart/items/{id}", h.removeItem)
	r.Post("/cart/replace", h.confirmReplace)
	r.Delete("/cart/replace", h.declineReplace)
}

// cartView adds the derived fields the UI gates on; subtotal selalu dihitung
// dari items, tidak pernah dari field tersimpan.
type cartView struct {
	*cart.Cart
	SubtotalCents int  `json:"subtotal_cents"`
	ItemCount     int  `json:"item_count"`
	IsEmpty       bool `json:"is_empty"`
}

func view(c *cart.Cart) cartView {
	return cartView{Cart: c, SubtotalCents: c.SubtotalCents(), ItemCount: c.ItemCount(), IsEmpty: c.IsEmpty()}
}

type addItemReq struct {
	RestaurantID   string    `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	Item           cart.Item `json:"item"`
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	writeJSON(w, http.StatusOK, view(h.Store.Load(r.Context(), session)))
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.RestaurantID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing restaurant_id"})
		return
	}

	c := h.Store.Load(r.Context(), session)
	err := c.AddItem(req.RestaurantID, req.RestaurantName, req.Item)
	switch {
	case errors.Is(err, cart.ErrDifferentRestaurant):
		// pending replacement tetap dipersist, frontend tinggal prompt
		if err := h.Store.Save(r.Context(), session, c); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":   "cart belongs to a different restaurant",
			"pending": c.Pending,
		})
		return
	case errors.Is(err, cart.ErrInvalidItem):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.persist(w, r, session, c)
}

func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c := h.Store.Load(r.Context(), session)
	c.UpdateQuantity(chi.URLParam(r, "id"), req.Quantity)
	h.persist(w, r, session, c)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	c := h.Store.Load(r.Context(), session)
	c.RemoveItem(chi.URLParam(r, "id"))
	h.persist(w, r, session, c)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	c := h.Store.Load(r.Context(), session)
	c.Clear()
	h.persist(w, r, session, c)
}

func (h *CartHandler) confirmReplace(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	c := h.Store.Load(r.Context(), session)
	if err := c.ConfirmReplace(); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	h.persist(w, r, session, c)
}

func (h *CartHandler) declineReplace(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session"})
		return
	}
	c := h.Store.Load(r.Context(), session)
	c.DeclineReplace()
	h.persist(w, r, session, c)
}

func (h *CartHandler) persist(w http.ResponseWriter, r *http.Request, session string, c *cart.Cart) {
	if err := h.Store.Save(r.Context(), session, c); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, view(c))
}
