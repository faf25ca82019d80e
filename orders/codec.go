package orders

import (
	"encoding/json"
	"log"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
)

// Decode turns a raw order document into a typed Order. The items
// attribute is a JSON string; malformed values decode to an empty list
// so one bad document cannot break a listing.
func Decode(doc *appwrite.Document) models.Order {
	order := models.Order{
		ID:              doc.ID,
		CustomerName:    doc.Str("customer_name"),
		CustomerPhone:   doc.Str("customer_phone"),
		DeliveryAddress: doc.Str("delivery_address"),
		Total:           doc.Int("total"),
		Status:          doc.Str("status"),
		PickupCode:      doc.Str("pickup_code"),
		CreatedAt:       doc.CreatedAt,
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	order.Items = DecodeItems(doc.Str("items"))
	return order
}

func DecodeItems(raw string) []models.OrderItem {
	items := []models.OrderItem{}
	if raw == "" {
		return items
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Println("orders: bad items payload:", err)
		return []models.OrderItem{}
	}
	return items
}

func EncodeItems(items []models.OrderItem) string {
	data, _ := json.Marshal(items)
	return string(data)
}
