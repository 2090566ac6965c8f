package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-food-orders.git/internal/orders"
)

// RestaurantsHandler is the read-only browsing surface the cart and
// checkout pages pull from.
type RestaurantsHandler struct {
	Repo *orders.Repo
}

func (h *RestaurantsHandler) Register(r *chi.Mux) {
	r.Get("/restaurants", h.list)
	r.Get("/restaurants/{id}", h.get)
	r.Get("/restaurants/{id}/menu", h.menu)
}

func (h *RestaurantsHandler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.Repo.ListRestaurants(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RestaurantsHandler) get(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Repo.GetRestaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *RestaurantsHandler) menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListMenu(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
