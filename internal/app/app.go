// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"

	"mcp-weather/internal/config"
	mcphandlers "mcp-weather/internal/handlers/mcp"
	"mcp-weather/internal/mcp"
	"mcp-weather/internal/mcp/llm"
	"mcp-weather/internal/middleware"
	"mcp-weather/pkg/weather"
)

// App menampung router utama beserta registry & server MCP.
type App struct {
	Router    *mux.Router
	Registry  *mcp.Registry
	MCP       *server.MCPServer
	MCPRouter *mcp.Router

	cfg *config.Config
	log *slog.Logger
}

// New membangun client cuaca, registry capability, chooser LLM (opsional),
// lalu mendaftarkan semua routes (HTTP & MCP).
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reg, err := BuildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	chooser := BuildChooser(cfg, logger)

	a := &App{
		Router:    mux.NewRouter(),
		Registry:  reg,
		MCP:       mcp.NewServer(reg, cfg.AppName, config.BuildVersion),
		MCPRouter: mcp.NewRouter(reg, chooser, logger),
		cfg:       cfg,
		log:       logger,
	}
	a.registerRoutes(chooser != nil)

	logger.Info("app initialised",
		"capabilities", reg.Names(),
		"weather_base_url", cfg.Weather.BaseURL,
		"llm", chooser != nil,
	)
	return a, nil
}

// BuildRegistry memasang client cuaca lalu mendaftarkan semua capability.
// Dipakai juga oleh cmd/mcp-router.
func BuildRegistry(cfg *config.Config) (*mcp.Registry, error) {
	var hc *http.Client
	if cfg.Weather.Timeout > 0 {
		hc = &http.Client{Timeout: cfg.Weather.Timeout}
	}
	mcphandlers.SetWeatherClient(weather.NewClient(cfg.Weather.BaseURL, hc))

	reg := mcp.NewRegistry()
	if err := mcphandlers.RegisterAll(reg); err != nil {
		return nil, fmt.Errorf("register capabilities: %w", err)
	}
	return reg, nil
}

// BuildChooser mengembalikan chooser LLM, atau nil jika OPENAI_API_KEY kosong
// (router lalu memakai keyword fallback).
func BuildChooser(cfg *config.Config, logger *slog.Logger) *llm.Chooser {
	if !cfg.HasLLM() {
		return nil
	}
	c, err := llm.NewClient(llm.Options{APIKey: cfg.LLM.APIKey, BaseURL: cfg.LLM.BaseURL, Model: cfg.LLM.Model})
	if err != nil {
		logger.Warn("llm chooser disabled", "error", err)
		return nil
	}
	logger.Info("llm chooser enabled", "model", c.Model())
	return llm.NewChooser(c)
}

func (a *App) adminCreds() middleware.AdminCreds {
	return middleware.AdminCreds{
		User:      a.cfg.Admin.User,
		PassHash:  a.cfg.Admin.PassHash,
		JWTSecret: a.cfg.Admin.JWTSecret,
	}
}

// Run menjalankan server HTTP sampai ctx dibatalkan, lalu shutdown graceful.
func (a *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server running", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
