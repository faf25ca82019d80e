package admin

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/middleware"
	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
	"github.com/clevercapitalinsights/marciah-crochet-closet/orders"
	"github.com/clevercapitalinsights/marciah-crochet-closet/utils"

	"github.com/julienschmidt/httprouter"
)

// ListOrders handles GET /api/admin/orders, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	docs, err := h.DB.ListDocuments(r.Context(), "", h.OrdersCollection, appwrite.QueryOrderDesc("$createdAt"))
	if err != nil {
		log.Println("ListOrders error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to load orders")
		return
	}

	list := make([]models.Order, 0, len(docs))
	for i := range docs {
		list = append(list, orders.Decode(&docs[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": list})
}

// UpdateOrderStatus handles PATCH /api/admin/orders/:orderid
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !models.ValidOrderStatus(payload.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	doc, err := h.DB.UpdateDocument(r.Context(), middleware.SessionSecret(r), h.OrdersCollection, ps.ByName("orderid"),
		map[string]interface{}{"status": payload.Status})
	if err != nil {
		if appwrite.IsNotFound(err) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Println("UpdateOrderStatus error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Error updating order")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orders.Decode(doc))
}
