package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clevercapitalinsights/marciah-crochet-closet/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// Claims wrap the backend session: the user id plus the session secret
// replayed to the external auth service on each call.
type Claims struct {
	Email   string `json:"email"`
	UserID  string `json:"userId"`
	Session string `json:"session"`
	jwt.RegisteredClaims
}

// Auth validates bearer tokens issued at login.
type Auth struct {
	Secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{Secret: []byte(secret)}
}

// Authenticate rejects requests without a valid bearer token and puts
// the user id and session secret into the request context.
func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := a.ValidateJWT(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.SessionKey, claims.Session)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth attaches the user when a valid token is present and
// proceeds regardless.
func (a *Auth) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims, err := a.ValidateJWT(r.Header.Get("Authorization")); err == nil {
			ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, globals.SessionKey, claims.Session)
			r = r.WithContext(ctx)
		}
		next(w, r, ps)
	}
}

// Sign issues a bearer token for the given claims.
func (a *Auth) Sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.Secret)
}

func (a *Auth) ValidateJWT(header string) (*Claims, error) {
	if len(header) < 8 || header[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(header[7:], claims, func(token *jwt.Token) (any, error) {
		return a.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}

// UserID returns the authenticated user's id, "" when anonymous.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}

// SessionSecret returns the backend session secret for the caller.
func SessionSecret(r *http.Request) string {
	s, _ := r.Context().Value(globals.SessionKey).(string)
	return s
}
