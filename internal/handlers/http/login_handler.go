// internal/handlers/http/login_handler.go
package http

import (
	"encoding/json"
	"net/http"

	"mcp-weather/internal/middleware"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // epoch seconds
	User      string `json:"user"`
	Role      string `json:"role"`
}

// NewLoginHandler: POST /login, tukar kredensial admin dengan JWT.
func NewLoginHandler(creds middleware.AdminCreds) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in loginReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if creds.User == "" || creds.PassHash == "" || creds.JWTSecret == "" {
			http.Error(w, "admin not configured", http.StatusForbidden)
			return
		}
		if !creds.CheckPassword(in.Username, in.Password) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		token, exp, err := middleware.GenerateAdminToken(creds.JWTSecret, creds.User)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, loginResp{
			Token:     token,
			ExpiresAt: exp,
			User:      creds.User,
			Role:      "admin",
		})
	}
}
