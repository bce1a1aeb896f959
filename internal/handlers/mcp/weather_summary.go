// internal/handlers/mcp/weather_summary.go
// MCP Prompt: weather_summary - template instruksi ringkasan cuaca (tanpa I/O)

package mcp

import (
	"context"
	"net/http"

	"mcp-weather/pkg/weather"
)

func WeatherSummary(_ context.Context, args map[string]string) (string, error) {
	return weather.SummaryPrompt(args["city"]), nil
}

// WeatherSummaryHandler: GET /api/weather/{city}/prompt
func WeatherSummaryHandler(w http.ResponseWriter, r *http.Request) {
	city, ok := cityFromRequest(r)
	if !ok {
		http.Error(w, "bad request: city is required", http.StatusBadRequest)
		return
	}
	out, _ := WeatherSummary(r.Context(), map[string]string{"city": city})
	writeText(w, out)
}
