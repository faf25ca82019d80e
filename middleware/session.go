package middleware

import (
	"context"
	"net/http"

	"github.com/clevercapitalinsights/marciah-crochet-closet/globals"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const sessionCookie = "csid"

// EnsureSession gives every caller a stable cart session id via
// cookie, so anonymous visitors keep their bag across reloads.
func EnsureSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var sid string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				MaxAge:   60 * 60 * 24 * 180,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), globals.CartSessionKey, sid)
		next(w, r.WithContext(ctx), ps)
	}
}

// CartSessionID returns the caller's cart session id. Handlers behind
// EnsureSession always get a non-empty value.
func CartSessionID(r *http.Request) string {
	sid, _ := r.Context().Value(globals.CartSessionKey).(string)
	return sid
}
