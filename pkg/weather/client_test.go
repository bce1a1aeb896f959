package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"mcp-weather/pkg/weather"
)

func TestLookupTrimsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Paris" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("format"); got != "3" {
			t.Errorf("expected format=3, got %q", got)
		}
		_, _ = w.Write([]byte("Paris: ☁️ +14°C\n"))
	}))
	defer ts.Close()

	c := weather.NewClient(ts.URL, ts.Client())
	got := c.Lookup(context.Background(), "Paris")
	if got != "Paris: ☁️ +14°C" {
		t.Fatalf("unexpected report: %q", got)
	}
}

func TestLookupUnknownLocationIsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("  Unknown location; please try ~48.85,2.35  \n"))
	}))
	defer ts.Close()

	rep := weather.NewClient(ts.URL, nil).Fetch(context.Background(), "Atlantis")
	if rep.Failed() {
		t.Fatalf("2xx body must be success, got err %v", rep.Err)
	}
	if rep.String() != "Unknown location; please try ~48.85,2.35" {
		t.Fatalf("unexpected text: %q", rep.String())
	}
}

func TestLookupConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close() // port sekarang menolak koneksi

	got := weather.NewClient(base, nil).Lookup(context.Background(), "Nowhere123")
	if !strings.HasPrefix(got, "Error fetching weather for Nowhere123: ") {
		t.Fatalf("expected error string, got %q", got)
	}
	if len(got) == len("Error fetching weather for Nowhere123: ") {
		t.Fatalf("error description must not be empty")
	}
}

func TestLookupNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer ts.Close()

	got := weather.NewClient(ts.URL, nil).Lookup(context.Background(), "Oslo")
	want := "Error fetching weather for Oslo: HTTP Error 404: Not Found"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestLookupInvalidUTF8(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xfe, 'x'})
	}))
	defer ts.Close()

	got := weather.NewClient(ts.URL, nil).Lookup(context.Background(), "Rome")
	want := "Error fetching weather for Rome: " + weather.ErrInvalidUTF8.Error()
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestCityIsEscapedAsSingleSegment(t *testing.T) {
	var gotRaw, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	c := weather.NewClient(ts.URL+"/", nil)
	_ = c.Lookup(context.Background(), "São Paulo/x?y#z")

	if gotRaw != "/S%C3%A3o%20Paulo%2Fx%3Fy%23z" {
		t.Fatalf("unexpected escaped path %q", gotRaw)
	}
	if gotQuery != "format=3" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestConcurrentLookupsAreIndependent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city := strings.TrimPrefix(r.URL.Path, "/")
		_, _ = w.Write([]byte(city + ": sunny\n"))
	}))
	defer ts.Close()

	c := weather.NewClient(ts.URL, nil)
	cities := []string{"Jakarta", "Bandung"}
	out := make([]string, len(cities))

	var wg sync.WaitGroup
	for round := 0; round < 20; round++ {
		for i, city := range cities {
			wg.Add(1)
			go func(i int, city string) {
				defer wg.Done()
				out[i] = c.Lookup(context.Background(), city)
			}(i, city)
		}
		wg.Wait()
		for i, city := range cities {
			if out[i] != city+": sunny" {
				t.Fatalf("round %d: %s got %q", round, city, out[i])
			}
		}
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := weather.NewClient("", nil)
	if c.BaseURL != weather.DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", c.BaseURL)
	}
	if c.HTTP == nil || c.HTTP.Timeout != 0 {
		t.Fatalf("expected http client without timeout override")
	}
	if got := c.URL("Paris"); got != "https://wttr.in/Paris?format=3" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestSummaryPromptAndURI(t *testing.T) {
	want := "Please provide a detailed weather summary for Paris based on the current conditions."
	if got := weather.SummaryPrompt("Paris"); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	uri := weather.ResourceURI("New York")
	if uri != "weather://New%20York" {
		t.Fatalf("unexpected uri %q", uri)
	}
	city, ok := weather.CityFromURI(uri)
	if !ok || city != "New York" {
		t.Fatalf("round trip failed: %q %v", city, ok)
	}
	if _, ok := weather.CityFromURI("http://x"); ok {
		t.Fatalf("foreign scheme must not match")
	}
}
