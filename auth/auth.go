package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/middleware"
	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
	"github.com/clevercapitalinsights/marciah-crochet-closet/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const tokenTTL = 72 * time.Hour

// Handler brokers sessions with the external auth service. Passwords
// are never stored or compared locally.
type Handler struct {
	Account         *appwrite.Account
	DB              *appwrite.Databases
	UsersCollection string
	Auth            *middleware.Auth
}

func NewHandler(account *appwrite.Account, db *appwrite.Databases, usersCollection string, auth *middleware.Auth) *Handler {
	return &Handler{Account: account, DB: db, UsersCollection: usersCollection, Auth: auth}
}

func (h *Handler) issueToken(sess *appwrite.Session, email string) (string, error) {
	expires := sess.ExpiresAt()
	if expires.IsZero() {
		expires = time.Now().Add(tokenTTL)
	}
	return h.Auth.Sign(&middleware.Claims{
		Email:   email,
		UserID:  sess.UserID,
		Session: sess.Secret,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	sess, err := h.Account.CreateEmailPasswordSession(r.Context(), input.Email, input.Password)
	if err != nil {
		log.Println("Login session error:", err)
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.issueToken(sess, input.Email)
	if err != nil {
		log.Println("Login token error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":  token,
		"userId": sess.UserID,
	})
}

// Register handles POST /api/auth/register: auth user, profile
// document with the customer role, then a fresh session.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	user, err := h.Account.Create(r.Context(), uuid.NewString(), input.Email, input.Password, input.Name)
	if err != nil {
		log.Println("Register create error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not create account")
		return
	}

	// Profile document carries the role used to gate the admin panel.
	// A failure here leaves a usable account without a profile; the
	// caller still gets a session.
	_, err = h.DB.CreateDocument(r.Context(), "", h.UsersCollection, uuid.NewString(), map[string]interface{}{
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   models.RoleCustomer,
	}, nil)
	if err != nil {
		log.Println("Register profile error:", err)
	}

	sess, err := h.Account.CreateEmailPasswordSession(r.Context(), input.Email, input.Password)
	if err != nil {
		log.Println("Register session error:", err)
		utils.RespondWithJSON(w, http.StatusCreated, utils.M{"userId": user.ID})
		return
	}

	token, err := h.issueToken(sess, input.Email)
	if err != nil {
		log.Println("Register token error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"token":  token,
		"userId": user.ID,
	})
}

// Logout handles POST /api/auth/logout, deleting the current backend
// session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.Account.DeleteSession(r.Context(), middleware.SessionSecret(r), "current"); err != nil {
		log.Println("Logout error:", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "logged_out"})
}

// Me handles GET /api/auth/me: the session user plus the admin flag
// from the profile document. A missing profile is a normal outcome.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session := middleware.SessionSecret(r)
	user, err := h.Account.Get(r.Context(), session)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	profile, err := h.Profile(r.Context(), user.ID)
	if err != nil {
		log.Println("Me profile error:", err)
	}

	isAdmin := profile != nil && profile.Role == models.RoleAdmin
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"user":    user,
		"isAdmin": isAdmin,
	})
}

// Profile fetches the profile document for an auth user id, nil when
// none exists.
func (h *Handler) Profile(ctx context.Context, authUserID string) (*models.UserProfile, error) {
	docs, err := h.DB.ListDocuments(ctx, "", h.UsersCollection, appwrite.QueryEqual("userId", authUserID))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	doc := docs[0]
	return &models.UserProfile{
		ID:     doc.ID,
		UserID: doc.Str("userId"),
		Email:  doc.Str("email"),
		Name:   doc.Str("name"),
		Role:   doc.Str("role"),
	}, nil
}
