package handlers

import (
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"chat-console/db"
	"chat-console/pkg/auth"
	"chat-console/pkg/template"
)

// AuthHandler serves console login against the local users table.
type AuthHandler struct {
	database      *db.Database
	authenticator *auth.Authenticator
	renderer      *template.Renderer
}

func NewAuthHandler(database *db.Database, authenticator *auth.Authenticator, renderer *template.Renderer) *AuthHandler {
	return &AuthHandler{
		database:      database,
		authenticator: authenticator,
		renderer:      renderer,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderer.Render(w, "login.html", map[string]string{})
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	log.Printf("🔑 Login attempt for %s", email)

	user, err := h.database.GetUserByEmail(r.Context(), email)
	if errors.Is(err, db.ErrUserNotFound) {
		log.Printf("❌ Login failed: no user with email %s", email)
		h.renderer.Render(w, "login.html", map[string]string{
			"Error": "Invalid email or password",
		})
		return
	}
	if err != nil {
		log.Printf("❌ Database error during login: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("❌ Login failed: invalid password for %s", email)
		h.renderer.Render(w, "login.html", map[string]string{
			"Error": "Invalid email or password",
		})
		return
	}

	token, err := h.authenticator.GenerateToken(&auth.User{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		log.Printf("❌ Failed to generate token for %s: %v", email, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	auth.SetSessionCookie(w, token)
	log.Printf("✅ User logged in: %s", email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
