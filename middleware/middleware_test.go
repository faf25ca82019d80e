package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func TestSignValidateRoundTrip(t *testing.T) {
	a := NewAuth("test-secret")
	token, err := a.Sign(&Claims{
		Email:   "jane@example.com",
		UserID:  "u1",
		Session: "sess-secret",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	claims, err := a.ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "u1" || claims.Session != "sess-secret" {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewAuth("secret-a").Sign(&Claims{UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewAuth("secret-b").ValidateJWT("Bearer " + token); err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	a := NewAuth("test-secret")
	token, err := a.Sign(&Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.ValidateJWT("Bearer " + token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestAuthenticatePutsIdentityInContext(t *testing.T) {
	a := NewAuth("test-secret")
	token, _ := a.Sign(&Claims{UserID: "u1", Session: "sess"})

	var gotUser, gotSession string
	handler := a.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser = UserID(r)
		gotSession = SessionSecret(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler(httptest.NewRecorder(), r, nil)

	if gotUser != "u1" || gotSession != "sess" {
		t.Fatalf("context identity: user=%q session=%q", gotUser, gotSession)
	}

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}
}

func TestEnsureSessionSetsCookieOnce(t *testing.T) {
	var got string
	handler := EnsureSession(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		got = CartSessionID(r)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	if got == "" {
		t.Fatal("no session id assigned")
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "csid" || cookies[0].Value != got {
		t.Fatalf("cookie: %+v", cookies)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "csid", Value: "existing"})
	w = httptest.NewRecorder()
	handler(w, r, nil)
	if got != "existing" {
		t.Fatalf("existing cookie not reused: %q", got)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatal("cookie must not be reissued")
	}
}
