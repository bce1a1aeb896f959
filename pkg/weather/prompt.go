package weather

import (
	"net/url"
	"strings"
)

const ResourceScheme = "weather://"

// SummaryPrompt membuat instruksi ringkasan cuaca untuk city. Tanpa I/O.
func SummaryPrompt(city string) string {
	return "Please provide a detailed weather summary for " + city + " based on the current conditions."
}

// ResourceURI -> "weather://{city}"
func ResourceURI(city string) string {
	return ResourceScheme + url.PathEscape(city)
}

// CityFromURI kebalikan dari ResourceURI. ok=false jika skema bukan weather://.
func CityFromURI(uri string) (string, bool) {
	if !strings.HasPrefix(uri, ResourceScheme) {
		return "", false
	}
	raw := strings.TrimPrefix(uri, ResourceScheme)
	city, err := url.PathUnescape(raw)
	if err != nil {
		return raw, true
	}
	return city, true
}
