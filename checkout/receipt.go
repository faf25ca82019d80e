package checkout

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/orders"
	"github.com/clevercapitalinsights/marciah-crochet-closet/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// qrPayload returns orderID|pickupCode|timestamp|signature so the QR
// can be checked at handover without a round trip.
func (h *Handler) qrPayload(orderID, pickupCode string) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, pickupCode, time.Now().Unix())
	mac := hmac.New(sha256.New, h.ReceiptSecret)
	mac.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// Receipt handles GET /api/orders/:orderid/receipt?code=, returning a
// PDF. The pickup code, not a login, authorizes the download.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Pickup code is required")
		return
	}

	doc, err := h.DB.GetDocument(r.Context(), "", h.OrdersCollection, orderID)
	if err != nil {
		if appwrite.IsNotFound(err) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Println("Receipt fetch error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load order")
		return
	}

	order := orders.Decode(doc)
	if order.PickupCode == "" || order.PickupCode != code {
		utils.RespondWithError(w, http.StatusForbidden, "Pickup code does not match")
		return
	}

	qrPNG, err := qrcode.Encode(h.qrPayload(order.ID, order.PickupCode), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order: %s", order.ID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Customer: %s (%s)", order.CustomerName, order.CustomerPhone))
	pdf.Ln(8)
	if order.DeliveryAddress != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Deliver to: %s", order.DeliveryAddress))
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(12)

	for _, item := range order.Items {
		pdf.Cell(0, 8, fmt.Sprintf("%d x %s @ %s", item.Quantity, item.ProductID, utils.FormatPrice(item.Price)))
		pdf.Ln(6)
	}
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %s", utils.FormatPrice(order.Total)))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
