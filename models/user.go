package models

// UserProfile is the per-user document in the users collection. The
// role only gates the admin surface; real access control lives in the
// backend service's permission rules.
type UserProfile struct {
	ID     string `json:"id"`
	UserID string `json:"userId"` // auth user id the profile belongs to
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"` // "customer" | "admin"
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
