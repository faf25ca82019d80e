package routes

import (
	"github.com/clevercapitalinsights/marciah-crochet-closet/admin"
	"github.com/clevercapitalinsights/marciah-crochet-closet/auth"
	"github.com/clevercapitalinsights/marciah-crochet-closet/cart"
	"github.com/clevercapitalinsights/marciah-crochet-closet/catalog"
	"github.com/clevercapitalinsights/marciah-crochet-closet/checkout"
	"github.com/clevercapitalinsights/marciah-crochet-closet/middleware"
	"github.com/clevercapitalinsights/marciah-crochet-closet/ratelim"
	"github.com/clevercapitalinsights/marciah-crochet-closet/wishlist"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, a *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", a.Authenticate(h.Logout))
	router.GET("/api/auth/me", a.Authenticate(h.Me))
}

func AddCatalogRoutes(router *httprouter.Router, h *catalog.Handler) {
	router.GET("/api/products", h.GetProducts)
	router.GET("/api/products/:productid", h.GetProduct)
	router.GET("/api/categories", h.GetCategories)
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler) {
	router.GET("/api/cart", middleware.EnsureSession(h.GetCart))
	router.POST("/api/cart/items", middleware.EnsureSession(h.AddItem))
	router.PUT("/api/cart/items", middleware.EnsureSession(h.UpdateItem))
	router.DELETE("/api/cart/items/:productid", middleware.EnsureSession(h.RemoveItem))
	router.DELETE("/api/cart", middleware.EnsureSession(h.ClearCart))
	router.PUT("/api/cart/open", middleware.EnsureSession(h.SetOpen))
}

func AddWishlistRoutes(router *httprouter.Router, h *wishlist.Handler) {
	router.GET("/api/wishlist", middleware.EnsureSession(h.GetWishlist))
	router.POST("/api/wishlist/:productid/toggle", middleware.EnsureSession(h.Toggle))
}

func AddCheckoutRoutes(router *httprouter.Router, h *checkout.Handler, a *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/checkout", rl.Limit(middleware.EnsureSession(a.OptionalAuth(h.PlaceOrder))))
	router.GET("/api/orders/:orderid/receipt", h.Receipt)
}

func AddAdminRoutes(router *httprouter.Router, h *admin.Handler, a *middleware.Auth) {
	router.GET("/api/admin/products", a.Authenticate(h.RequireAdmin(h.ListProducts)))
	router.POST("/api/admin/products", a.Authenticate(h.RequireAdmin(h.CreateProduct)))
	router.PUT("/api/admin/products/:productid", a.Authenticate(h.RequireAdmin(h.UpdateProduct)))
	router.DELETE("/api/admin/products/:productid", a.Authenticate(h.RequireAdmin(h.DeleteProduct)))
	router.GET("/api/admin/orders", a.Authenticate(h.RequireAdmin(h.ListOrders)))
	router.PATCH("/api/admin/orders/:orderid", a.Authenticate(h.RequireAdmin(h.UpdateOrderStatus)))
}
