// internal/handlers/http/admin_handler.go
package http

import (
	"net/http"

	mcphandlers "mcp-weather/internal/handlers/mcp"
	"mcp-weather/internal/mcp"
)

type CapabilityMeta struct {
	Name        string         `json:"name"`
	Kind        mcp.Kind       `json:"kind"`
	Description string         `json:"description"`
	URITemplate string         `json:"uri_template,omitempty"`
	MIMEType    string         `json:"mime_type,omitempty"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

func capabilityMetas(reg *mcp.Registry, withSchema bool) []CapabilityMeta {
	caps := reg.List()
	out := make([]CapabilityMeta, 0, len(caps))
	for _, c := range caps {
		m := CapabilityMeta{
			Name:        c.Name,
			Kind:        c.Kind,
			Description: c.Description,
			URITemplate: c.URITemplate,
			MIMEType:    c.MIMEType,
		}
		if withSchema {
			m.InputSchema = c.Schema()
		}
		out = append(out, m)
	}
	return out
}

// NewCapabilitiesHandler: GET /api/capabilities (publik, tanpa schema).
func NewCapabilitiesHandler(reg *mcp.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"capabilities": capabilityMetas(reg, false)})
	}
}

// NewAdminCapabilitiesHandler: GET /admin/capabilities, lengkap dengan schema,
// status readiness dan apakah chooser LLM aktif.
func NewAdminCapabilitiesHandler(reg *mcp.Registry, hasLLM bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"capabilities": capabilityMetas(reg, true),
			"ready":        mcphandlers.ReadyStatus(),
			"llm_enabled":  hasLLM,
		})
	}
}
