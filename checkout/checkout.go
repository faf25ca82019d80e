package checkout

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/cart"
	"github.com/clevercapitalinsights/marciah-crochet-closet/middleware"
	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
	"github.com/clevercapitalinsights/marciah-crochet-closet/orders"
	"github.com/clevercapitalinsights/marciah-crochet-closet/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Handler turns a session cart into a persisted order. Creating the
// order and clearing the cart are two separate steps with no
// transaction between them; a clear failure is logged, never surfaced.
type Handler struct {
	DB               *appwrite.Databases
	OrdersCollection string
	Carts            *cart.Manager
	ReceiptSecret    []byte
}

func NewHandler(db *appwrite.Databases, ordersCollection string, carts *cart.Manager, receiptSecret string) *Handler {
	return &Handler{
		DB:               db,
		OrdersCollection: ordersCollection,
		Carts:            carts,
		ReceiptSecret:    []byte(receiptSecret),
	}
}

// PlaceOrder handles POST /api/checkout
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		CustomerName    string `json:"customerName"`
		CustomerPhone   string `json:"customerPhone"`
		DeliveryAddress string `json:"deliveryAddress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerPhone) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and phone are required")
		return
	}

	store := h.Carts.Store(r.Context(), middleware.CartSessionID(r))
	snap := store.Snapshot()
	if len(snap.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Your bag is empty")
		return
	}

	// Price at purchase comes from the cart lines, total from the
	// server-side sum, never from the request body.
	items := make([]models.OrderItem, 0, len(snap.Items))
	for _, line := range snap.Items {
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	orderID := uuid.NewString()
	pickupCode := strings.Split(uuid.NewString(), "-")[0]

	_, err := h.DB.CreateDocument(r.Context(), middleware.SessionSecret(r), h.OrdersCollection, orderID, map[string]interface{}{
		"customer_name":    input.CustomerName,
		"customer_phone":   input.CustomerPhone,
		"delivery_address": input.DeliveryAddress,
		"items":            orders.EncodeItems(items),
		"total":            snap.TotalPrice,
		"status":           models.OrderPending,
		"pickup_code":      pickupCode,
	}, nil)
	if err != nil {
		log.Println("PlaceOrder create error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Order creation failed")
		return
	}

	if err := store.Clear(r.Context()); err != nil {
		log.Println("PlaceOrder cart cleanup error:", err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"orderId":    orderID,
		"pickupCode": pickupCode,
		"total":      snap.TotalPrice,
		"status":     models.OrderPending,
		"receiptUrl": "/api/orders/" + orderID + "/receipt?code=" + pickupCode,
	})
}
