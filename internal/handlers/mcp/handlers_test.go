package mcp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"

	mcphandlers "mcp-weather/internal/handlers/mcp"
	"mcp-weather/internal/mcp"
	"mcp-weather/pkg/weather"
)

func stubUpstream(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		_, _ = w.Write([]byte(strings.TrimPrefix(r.URL.Path, "/") + ": ☀️ +31°C\n"))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newRegistry(t *testing.T, base string) *mcp.Registry {
	t.Helper()
	mcphandlers.SetWeatherClient(weather.NewClient(base, nil))
	reg := mcp.NewRegistry()
	if err := mcphandlers.RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	return reg
}

func TestResourceMatchesTool(t *testing.T) {
	ts := stubUpstream(t, nil)
	reg := newRegistry(t, ts.URL)
	ctx := context.Background()

	tool, err := reg.Invoke(ctx, mcphandlers.ToolGetWeather, map[string]string{"city": "Jakarta"})
	if err != nil {
		t.Fatalf("tool: %v", err)
	}

	c, args, ok := reg.Resolve(weather.ResourceURI("Jakarta"))
	if !ok || c.Name != mcphandlers.ResourceWeather {
		t.Fatalf("resource not resolved: %+v %v", c, ok)
	}
	res, err := reg.Invoke(ctx, c.Name, args)
	if err != nil {
		t.Fatalf("resource: %v", err)
	}

	if tool != res || tool != "Jakarta: ☀️ +31°C" {
		t.Fatalf("tool %q != resource %q", tool, res)
	}
}

func TestPromptDoesNoNetwork(t *testing.T) {
	var hits int32
	ts := stubUpstream(t, &hits)
	reg := newRegistry(t, ts.URL)

	out, err := reg.Invoke(context.Background(), mcphandlers.PromptWeatherSummary, map[string]string{"city": "Bandung"})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	want := "Please provide a detailed weather summary for Bandung based on the current conditions."
	if out != want {
		t.Fatalf("want %q, got %q", want, out)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("prompt must not call upstream, got %d hits", hits)
	}
}

func TestRegisterAllTwiceFails(t *testing.T) {
	reg := mcp.NewRegistry()
	if err := mcphandlers.RegisterAll(reg); err != nil {
		t.Fatalf("first RegisterAll: %v", err)
	}
	if err := mcphandlers.RegisterAll(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestGetWeatherHandler(t *testing.T) {
	ts := stubUpstream(t, nil)
	newRegistry(t, ts.URL)

	r := mux.NewRouter()
	r.HandleFunc("/api/weather/{city}", mcphandlers.GetWeatherHandler)
	r.HandleFunc("/api/weather/{city}/prompt", mcphandlers.WeatherSummaryHandler)
	r.HandleFunc("/weather", mcphandlers.GetWeatherHandler)

	cases := []struct {
		method, target, body string
		code                 int
		want                 string
	}{
		{http.MethodGet, "/api/weather/Surabaya", "", http.StatusOK, "Surabaya: ☀️ +31°C"},
		{http.MethodGet, "/weather?city=Medan", "", http.StatusOK, "Medan: ☀️ +31°C"},
		{http.MethodPost, "/weather", `{"city":"Bogor"}`, http.StatusOK, "Bogor: ☀️ +31°C"},
		{http.MethodGet, "/weather", "", http.StatusBadRequest, ""},
		{http.MethodGet, "/api/weather/Depok/prompt", "", http.StatusOK,
			"Please provide a detailed weather summary for Depok based on the current conditions."},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.code {
			t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.target, tc.code, rec.Code, rec.Body.String())
		}
		if tc.want != "" && rec.Body.String() != tc.want {
			t.Fatalf("%s %s: want %q, got %q", tc.method, tc.target, tc.want, rec.Body.String())
		}
	}
}

func TestReadyStatus(t *testing.T) {
	mcphandlers.SetWeatherClient(nil)
	if mcphandlers.ReadyStatus()["weather"] {
		t.Fatalf("expected not ready without client")
	}
	if _, err := mcphandlers.GetWeather(context.Background(), map[string]string{"city": "x"}); err == nil {
		t.Fatalf("expected error without client")
	}
	mcphandlers.SetWeatherClient(weather.NewClient("", nil))
	if !mcphandlers.ReadyStatus()["weather"] {
		t.Fatalf("expected ready with client")
	}
}
