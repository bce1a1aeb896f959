// cmd/mcp-router/main.go
// Binary MCP mandiri: streamable-http + /route (chi), stdio, dan lookup CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"mcp-weather/internal/app"
	"mcp-weather/internal/config"
	"mcp-weather/internal/logger"
	"mcp-weather/internal/mcp"
	"mcp-weather/internal/middleware"
	"mcp-weather/pkg/weather"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mcp-router",
		Short:         "Weather MCP server (get_weather, weather://{city}, weather_summary)",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.SetOut(out)

	var port string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over streamable-http (/mcp) plus the JSON router (/route)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(os.Stderr)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.MCPPort = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $MCP_PORT)")

	stdioCmd := &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout milik protokol, log ke stderr
			cfg, _, err := setup(os.Stderr)
			if err != nil {
				return err
			}
			reg, err := app.BuildRegistry(cfg)
			if err != nil {
				return err
			}
			return mcp.ServeStdio(mcp.NewServer(reg, cfg.AppName, config.BuildVersion))
		},
	}

	lookupCmd := &cobra.Command{
		Use:   "lookup CITY",
		Short: "Print the one-line weather report for CITY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(io.Discard)
			if err != nil {
				return err
			}
			var hc *http.Client
			if cfg.Weather.Timeout > 0 {
				hc = &http.Client{Timeout: cfg.Weather.Timeout}
			}
			c := weather.NewClient(cfg.Weather.BaseURL, hc)
			fmt.Fprintln(cmd.OutOrStdout(), c.Lookup(cmd.Context(), args[0]))
			return nil
		},
	}

	promptCmd := &cobra.Command{
		Use:   "prompt CITY",
		Short: "Print the weather_summary prompt for CITY",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), weather.SummaryPrompt(args[0]))
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mcp-router %s\n", config.BuildVersion)
		},
	}

	rootCmd.AddCommand(serveCmd, stdioCmd, lookupCmd, promptCmd, versionCmd)
	return rootCmd
}

func setup(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logOut, cfg.LogLevel, cfg.LogFormat, cfg.AppName+"-mcp")
	slog.SetDefault(log)
	return cfg, log, nil
}

// newHandler: chi router dengan /healthz, /mcp (streamable-http) dan /route.
func newHandler(reg *mcp.Registry, cfg *config.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/mcp", mcp.NewStreamableHTTP(mcp.NewServer(reg, cfg.AppName, config.BuildVersion)))
	r.Method(http.MethodPost, "/route", mcp.NewRouter(reg, app.BuildChooser(cfg, log), log))
	return r
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	reg, err := app.BuildRegistry(cfg)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              ":" + cfg.MCPPort,
		Handler:           newHandler(reg, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("MCP router listening", "addr", srv.Addr, "capabilities", reg.Names())
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
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
