package cart

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/clevercapitalinsights/marciah-crochet-closet/catalog"
	"github.com/clevercapitalinsights/marciah-crochet-closet/middleware"
	"github.com/clevercapitalinsights/marciah-crochet-closet/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the session cart. Product details are fetched from
// the catalog rather than trusted from the request body.
type Handler struct {
	Carts   *Manager
	Catalog *catalog.Service
}

func NewHandler(carts *Manager, svc *catalog.Service) *Handler {
	return &Handler{Carts: carts, Catalog: svc}
}

func (h *Handler) store(r *http.Request) *Store {
	return h.Carts.Store(r.Context(), middleware.CartSessionID(r))
}

// GetCart handles GET /api/cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.store(r).Snapshot())
}

// AddItem handles POST /api/cart/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		ProductID string `json:"productId"`
		Color     string `json:"color"`
		Size      string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddItem decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}

	product, err := h.Catalog.ProductByID(r.Context(), payload.ProductID)
	if err != nil {
		log.Println("AddItem product fetch error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load product")
		return
	}
	if product == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	store := h.store(r)
	if err := store.AddItem(r.Context(), *product, payload.Color, payload.Size); err != nil {
		log.Println("AddItem save error:", err)
	}
	utils.RespondWithJSON(w, http.StatusCreated, store.Snapshot())
}

// UpdateItem handles PUT /api/cart/items
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		Color     string `json:"color"`
		Size      string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateItem decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}

	store := h.store(r)
	if err := store.UpdateQuantity(r.Context(), payload.ProductID, payload.Quantity, payload.Color, payload.Size); err != nil {
		log.Println("UpdateItem save error:", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}

// RemoveItem handles DELETE /api/cart/items/:productid?color=&size=
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	q := r.URL.Query()
	store := h.store(r)
	if err := store.RemoveItem(r.Context(), ps.ByName("productid"), q.Get("color"), q.Get("size")); err != nil {
		log.Println("RemoveItem save error:", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}

// ClearCart handles DELETE /api/cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store := h.store(r)
	if err := store.Clear(r.Context()); err != nil {
		log.Println("ClearCart save error:", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}

// SetOpen handles PUT /api/cart/open, letting the client reset the
// drawer indicator after the add-to-bag side effect flipped it on.
func (h *Handler) SetOpen(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Open bool `json:"open"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	store := h.store(r)
	store.SetOpen(payload.Open)
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}
