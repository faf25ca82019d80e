package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds every identifier the storefront needs to reach its
// collaborators. The Appwrite values have no defaults: the service
// refuses to start without them.
type Config struct {
	Port      string
	RedisAddr string
	JWTSecret string

	AppwriteEndpoint   string
	AppwriteProject    string
	AppwriteAPIKey     string // optional, used for server-side writes
	AppwriteDatabase   string
	ProductsCollection string
	OrdersCollection   string
	UsersCollection    string
	ImagesBucket       string

	ReceiptSecret string
}

var required = []string{
	"APPWRITE_ENDPOINT",
	"APPWRITE_PROJECT_ID",
	"APPWRITE_DATABASE_ID",
	"APPWRITE_PRODUCTS_COLLECTION_ID",
	"APPWRITE_ORDERS_COLLECTION_ID",
	"APPWRITE_USERS_COLLECTION_ID",
	"APPWRITE_BUCKET_ID",
	"JWT_SECRET",
}

// Load reads configuration from the environment. Callers should have
// loaded .env (godotenv) beforehand.
func Load() (*Config, error) {
	var missing []string
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	receiptSecret := os.Getenv("RECEIPT_SECRET")
	if receiptSecret == "" {
		receiptSecret = os.Getenv("JWT_SECRET")
	}

	return &Config{
		Port:               port,
		RedisAddr:          redisAddr,
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AppwriteEndpoint:   strings.TrimRight(os.Getenv("APPWRITE_ENDPOINT"), "/"),
		AppwriteProject:    os.Getenv("APPWRITE_PROJECT_ID"),
		AppwriteAPIKey:     os.Getenv("APPWRITE_API_KEY"),
		AppwriteDatabase:   os.Getenv("APPWRITE_DATABASE_ID"),
		ProductsCollection: os.Getenv("APPWRITE_PRODUCTS_COLLECTION_ID"),
		OrdersCollection:   os.Getenv("APPWRITE_ORDERS_COLLECTION_ID"),
		UsersCollection:    os.Getenv("APPWRITE_USERS_COLLECTION_ID"),
		ImagesBucket:       os.Getenv("APPWRITE_BUCKET_ID"),
		ReceiptSecret:      receiptSecret,
	}, nil
}
