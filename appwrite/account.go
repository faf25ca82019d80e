package appwrite

import (
	"context"
	"net/http"
	"time"
)

// Account is the auth service. All password handling happens on the
// backend; this service only brokers sessions.
type Account struct {
	client *Client
}

func NewAccount(client *Client) *Account {
	return &Account{client: client}
}

// User is the auth-side identity, distinct from the profile document
// kept in the users collection.
type User struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is an email/password session. Secret is replayed on later
// calls via the X-Appwrite-Session header.
type Session struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
	Expire string `json:"expire"`
}

// ExpiresAt parses the session expiry, zero time when unparseable.
func (s Session) ExpiresAt() time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s.Expire)
	return t
}

// Get returns the user behind the given session secret, or an error
// when the session is gone.
func (a *Account) Get(ctx context.Context, session string) (*User, error) {
	var u User
	if err := a.client.do(ctx, http.MethodGet, "/account", session, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create registers a new auth user.
func (a *Account) Create(ctx context.Context, userID, email, password, name string) (*User, error) {
	body := map[string]interface{}{
		"userId":   userID,
		"email":    email,
		"password": password,
		"name":     name,
	}
	var u User
	if err := a.client.do(ctx, http.MethodPost, "/account", "", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *Account) CreateEmailPasswordSession(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	var s Session
	if err := a.client.do(ctx, http.MethodPost, "/account/sessions/email", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession tears down a session; pass "current" for the one the
// secret belongs to.
func (a *Account) DeleteSession(ctx context.Context, session, sessionID string) error {
	return a.client.do(ctx, http.MethodDelete, "/account/sessions/"+sessionID, session, nil, nil)
}
