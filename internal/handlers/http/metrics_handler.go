// internal/handlers/http/metrics_handler.go
// Handler untuk metrics Prometheus format sederhana

package http

import (
	"fmt"
	"net/http"

	mcphandlers "mcp-weather/internal/handlers/mcp"
	"mcp-weather/internal/mcp"
)

func NewMetricsHandler(reg *mcp.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprintf(w, "# HELP app_up 1 if the app is up\n# TYPE app_up gauge\napp_up 1\n")

		fmt.Fprintf(w, "# HELP mcp_capabilities_registered Registered MCP capabilities by kind\n# TYPE mcp_capabilities_registered gauge\n")
		for _, k := range []mcp.Kind{mcp.KindTool, mcp.KindResource, mcp.KindPrompt} {
			fmt.Fprintf(w, "mcp_capabilities_registered{kind=%q} %d\n", k, len(reg.ListKind(k)))
		}

		ready := 0
		if mcphandlers.ReadyStatus()["weather"] {
			ready = 1
		}
		fmt.Fprintf(w, "# HELP weather_client_ready 1 if the weather client is configured\n# TYPE weather_client_ready gauge\nweather_client_ready %d\n", ready)
	}
}
