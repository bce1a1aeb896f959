// internal/middleware/admin_auth.go
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AdminCreds: user + bcrypt hash password + secret JWT.
type AdminCreds struct {
	User      string
	PassHash  string
	JWTSecret string
}

// CheckPassword membandingkan user (constant time) dan password (bcrypt).
func (c AdminCreds) CheckPassword(user, pass string) bool {
	if c.User == "" || c.PassHash == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PassHash), []byte(pass)) == nil
}

// AdminBasicAuth: HTTP Basic dengan kredensial admin.
func AdminBasicAuth(c AdminCreds) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c.User == "" || c.PassHash == "" {
				http.Error(w, "admin auth not configured", http.StatusForbidden)
				return
			}
			u, p, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				http.Error(w, "auth required", http.StatusUnauthorized)
				return
			}
			if !c.CheckPassword(u, p) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminAuth menerima Basic (bcrypt) atau Bearer (JWT) tergantung header.
func AdminAuth(c AdminCreds) func(http.Handler) http.Handler {
	basic := AdminBasicAuth(c)
	bearer := AdminJWTAuth(c.JWTSecret)
	return func(next http.Handler) http.Handler {
		viaBasic, viaJWT := basic(next), bearer(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
				viaBasic.ServeHTTP(w, r)
				return
			}
			viaJWT.ServeHTTP(w, r)
		})
	}
}
