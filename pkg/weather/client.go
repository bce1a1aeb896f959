// Client untuk layanan cuaca teks wttr.in (format satu baris)

package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	DefaultBaseURL = "https://wttr.in"
	// format=3 -> "Kota: ikon +suhu" dalam satu baris
	lineFormat = "3"
)

var ErrInvalidUTF8 = errors.New("response body is not valid utf-8")

// StatusError dipakai untuk respons upstream non-2xx.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP Error %d: %s", e.Code, e.Reason)
}

// Report adalah hasil satu lookup: teks sukses atau error.
type Report struct {
	City string
	Text string
	Err  error
}

func (r Report) Failed() bool { return r.Err != nil }

// String merender report ke bentuk yang dikembalikan ke caller.
func (r Report) String() string {
	if r.Err != nil {
		return fmt.Sprintf("Error fetching weather for %s: %v", r.City, r.Err)
	}
	return r.Text
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient membuat client. baseURL kosong -> wttr.in, hc nil -> tanpa timeout khusus.
func NewClient(baseURL string, hc *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{BaseURL: baseURL, HTTP: hc}
}

// URL membangun endpoint untuk city; city di-escape sebagai satu path segment.
func (c *Client) URL(city string) string {
	q := url.Values{}
	q.Set("format", lineFormat)
	return c.BaseURL + "/" + url.PathEscape(city) + "?" + q.Encode()
}

// Fetch melakukan tepat satu GET. Semua kegagalan dikembalikan di Report.Err.
func (c *Client) Fetch(ctx context.Context, city string) Report {
	rep := Report{City: city}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(city), nil)
	if err != nil {
		rep.Err = err
		return rep
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		rep.Err = err
		return rep
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		rep.Err = &StatusError{Code: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
		return rep
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		rep.Err = fmt.Errorf("read body: %w", err)
		return rep
	}
	if !utf8.Valid(body) {
		rep.Err = ErrInvalidUTF8
		return rep
	}

	rep.Text = strings.TrimSpace(string(body))
	return rep
}

// Lookup = Fetch lalu render ke string. Tidak pernah mengembalikan error.
func (c *Client) Lookup(ctx context.Context, city string) string {
	return c.Fetch(ctx, city).String()
}
