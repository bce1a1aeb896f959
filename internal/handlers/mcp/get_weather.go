// internal/handlers/mcp/get_weather.go
// MCP Tool: get_weather - cuaca satu baris untuk sebuah kota (wttr.in)

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"mcp-weather/pkg/weather"
)

// WeatherLookup dipenuhi oleh *weather.Client.
type WeatherLookup interface {
	Lookup(ctx context.Context, city string) string
}

// inject dari app
var weatherLookup WeatherLookup

func SetWeatherClient(c WeatherLookup) {
	weatherLookup = c
	readyWeather = c != nil
}

var errNotConfigured = errors.New("weather client not configured")

// GetWeather adalah implementasi capability get_weather.
// Kegagalan jaringan sudah berbentuk string dari weather.Client; error hanya
// untuk wiring yang belum lengkap.
func GetWeather(ctx context.Context, args map[string]string) (string, error) {
	if weatherLookup == nil {
		return "", errNotConfigured
	}
	return weatherLookup.Lookup(ctx, args["city"]), nil
}

// GetWeatherResource = GetWeather, diakses lewat weather://{city}.
func GetWeatherResource(ctx context.Context, args map[string]string) (string, error) {
	return GetWeather(ctx, args)
}

// GetWeatherHandler: GET /api/weather/{city} atau ?city=..., POST {"city": "..."}.
func GetWeatherHandler(w http.ResponseWriter, r *http.Request) {
	city, ok := cityFromRequest(r)
	if !ok {
		http.Error(w, "bad request: city is required", http.StatusBadRequest)
		return
	}
	out, err := GetWeather(r.Context(), map[string]string{"city": city})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeText(w, out)
}

// city boleh string kosong jika dikirim eksplisit; ok=false hanya jika tidak ada sama sekali.
func cityFromRequest(r *http.Request) (string, bool) {
	if v, ok := mux.Vars(r)["city"]; ok {
		return v, true
	}
	if q := r.URL.Query(); q.Has("city") {
		return q.Get("city"), true
	}
	if r.Method == http.MethodPost && r.Body != nil {
		var in map[string]any
		if err := json.NewDecoder(r.Body).Decode(&in); err == nil {
			if v, ok := in["city"].(string); ok {
				return v, true
			}
		}
	}
	return "", false
}

func writeText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s))
}

// pastikan *weather.Client memenuhi kontrak
var _ WeatherLookup = (*weather.Client)(nil)
