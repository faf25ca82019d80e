package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clevercapitalinsights/marciah-crochet-closet/admin"
	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/auth"
	"github.com/clevercapitalinsights/marciah-crochet-closet/cart"
	"github.com/clevercapitalinsights/marciah-crochet-closet/catalog"
	"github.com/clevercapitalinsights/marciah-crochet-closet/checkout"
	"github.com/clevercapitalinsights/marciah-crochet-closet/config"
	"github.com/clevercapitalinsights/marciah-crochet-closet/middleware"
	"github.com/clevercapitalinsights/marciah-crochet-closet/ratelim"
	"github.com/clevercapitalinsights/marciah-crochet-closet/rdx"
	"github.com/clevercapitalinsights/marciah-crochet-closet/routes"
	"github.com/clevercapitalinsights/marciah-crochet-closet/wishlist"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(cfg *config.Config, kv *rdx.KV) *httprouter.Router {
	client := appwrite.NewClient(cfg.AppwriteEndpoint, cfg.AppwriteProject, cfg.AppwriteAPIKey)
	db := appwrite.NewDatabases(client, cfg.AppwriteDatabase)
	storage := appwrite.NewStorage(client)
	account := appwrite.NewAccount(client)

	jwtAuth := middleware.NewAuth(cfg.JWTSecret)
	carts := cart.NewManager(kv)
	wishlists := wishlist.NewManager(kv)
	catalogSvc := catalog.NewService(db, cfg.ProductsCollection)

	// login and checkout share one limiter budget
	limiter := ratelim.NewRateLimiter(1, 5)

	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router, auth.NewHandler(account, db, cfg.UsersCollection, jwtAuth), jwtAuth, limiter)
	routes.AddCatalogRoutes(router, catalog.NewHandler(catalogSvc, storage, cfg.ImagesBucket))
	routes.AddCartRoutes(router, cart.NewHandler(carts, catalogSvc))
	routes.AddWishlistRoutes(router, wishlist.NewHandler(wishlists))
	routes.AddCheckoutRoutes(router, checkout.NewHandler(db, cfg.OrdersCollection, carts, cfg.ReceiptSecret), jwtAuth, limiter)
	routes.AddAdminRoutes(router, admin.NewHandler(db, storage, cfg.ProductsCollection, cfg.OrdersCollection, cfg.UsersCollection, cfg.ImagesBucket), jwtAuth)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	kv, err := rdx.New(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}

	router := setupRouter(cfg, kv)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		if err := kv.Close(); err != nil {
			log.Println("Redis close error:", err)
		}
	})

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
