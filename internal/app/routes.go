// internal/app/routes.go
package app

import (
	"net/http"

	hh "mcp-weather/internal/handlers/http"
	mcphandlers "mcp-weather/internal/handlers/mcp"
	"mcp-weather/internal/mcp"
	"mcp-weather/internal/middleware"
	"mcp-weather/internal/util"
)

func (a *App) registerRoutes(hasLLM bool) {
	r := a.Router
	r.Use(middleware.RequestID, middleware.CORS)

	health := hh.NewHealth(util.RealClock{})

	// --- no prefix ---
	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/metrics", hh.NewMetricsHandler(a.Registry)).Methods(http.MethodGet)
	r.HandleFunc("/login", hh.NewLoginHandler(a.adminCreds())).Methods(http.MethodPost, http.MethodOptions)

	// ---- MCP ----
	// streamable-http (POST/GET/DELETE) untuk klien MCP asli
	r.Handle("/mcp", mcp.NewStreamableHTTP(a.MCP)).Methods(http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions)
	// router JSON sederhana (tool | uri | question)
	r.Handle("/mcp/route", a.MCPRouter).Methods(http.MethodPost, http.MethodOptions)

	// --- /api prefix (capability diekspos via HTTP biasa) ---
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/capabilities", hh.NewCapabilitiesHandler(a.Registry)).Methods(http.MethodGet)
	api.HandleFunc("/weather", mcphandlers.GetWeatherHandler).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/weather/{city}", mcphandlers.GetWeatherHandler).Methods(http.MethodGet)
	api.HandleFunc("/weather/{city}/prompt", mcphandlers.WeatherSummaryHandler).Methods(http.MethodGet)

	// Preflight catch-all
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(hh.PreflightHandler)

	// Admin (Bearer JWT atau Basic)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(a.adminCreds()))
	admin.HandleFunc("/capabilities", hh.NewAdminCapabilitiesHandler(a.Registry, hasLLM)).Methods(http.MethodGet)
}
