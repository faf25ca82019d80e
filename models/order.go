package models

import "time"

// OrderItem captures a purchased line with its price at purchase time.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

// Order is a finalized order as stored in the orders collection.
type Order struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address"`
	Items           []OrderItem `json:"items"`
	Total           int         `json:"total"`
	Status          string      `json:"status"`
	PickupCode      string      `json:"pickup_code,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

var orderStatuses = []string{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled}

func ValidOrderStatus(s string) bool {
	for _, st := range orderStatuses {
		if st == s {
			return true
		}
	}
	return false
}
