package auth

import (
	"log"
	"net/http"
)

const cookieName = "auth_token"

// Middleware guards console pages behind the session cookie. Anything
// without a valid token is bounced to the login page.
func (a *Authenticator) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := a.ValidateToken(cookie.Value)
		if err != nil {
			log.Printf("❌ Invalid session token: %v", err)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next(w, r.WithContext(ContextWithUser(r.Context(), user)))
	}
}

// SetSessionCookie attaches a fresh session token to the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		MaxAge:   86400,
	})
}

// ClearSessionCookie logs the session out.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
