package wishlist

import (
	"log"
	"net/http"

	"github.com/clevercapitalinsights/marciah-crochet-closet/middleware"
	"github.com/clevercapitalinsights/marciah-crochet-closet/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Wishlists *Manager
}

func NewHandler(wishlists *Manager) *Handler {
	return &Handler{Wishlists: wishlists}
}

func (h *Handler) store(r *http.Request) *Store {
	return h.Wishlists.Store(r.Context(), middleware.CartSessionID(r))
}

// GetWishlist handles GET /api/wishlist
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"wishlist": h.store(r).IDs()})
}

// Toggle handles POST /api/wishlist/:productid/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("productid")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "product id is required")
		return
	}

	store := h.store(r)
	wishlisted, err := store.Toggle(r.Context(), id)
	if err != nil {
		log.Println("Toggle save error:", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"productId":  id,
		"wishlisted": wishlisted,
		"wishlist":   store.IDs(),
	})
}
