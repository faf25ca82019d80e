package admin

import (
	"net/http"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/middleware"
	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
	"github.com/clevercapitalinsights/marciah-crochet-closet/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the admin panel. Every route is gated on the caller's
// profile document carrying the admin role; the external store's
// permission rules remain the real access control.
type Handler struct {
	DB      *appwrite.Databases
	Storage *appwrite.Storage

	ProductsCollection string
	OrdersCollection   string
	UsersCollection    string
	Bucket             string
}

func NewHandler(db *appwrite.Databases, storage *appwrite.Storage, products, orders, users, bucket string) *Handler {
	return &Handler{
		DB:                 db,
		Storage:            storage,
		ProductsCollection: products,
		OrdersCollection:   orders,
		UsersCollection:    users,
		Bucket:             bucket,
	}
}

// RequireAdmin wraps a handler with the role check. Runs inside
// Authenticate, so the user id is always present.
func (h *Handler) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := middleware.UserID(r)
		docs, err := h.DB.ListDocuments(r.Context(), "", h.UsersCollection, appwrite.QueryEqual("userId", userID))
		if err != nil {
			utils.RespondWithError(w, http.StatusBadGateway, "Could not verify role")
			return
		}
		if len(docs) == 0 || docs[0].Str("role") != models.RoleAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r, ps)
	}
}

