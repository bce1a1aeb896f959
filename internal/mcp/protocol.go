// mcp/protocol.go
// Envelope JSON untuk endpoint /mcp/route

package mcp

import "fmt"

type ToolRequest struct {
	Tool   string         `json:"tool,omitempty"`
	URI    string         `json:"uri,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

type ToolResponse struct {
	Success bool   `json:"success"`
	Tool    string `json:"tool,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// stringArgs mengubah params bebas menjadi argumen string capability.
// Nilai non-string (angka, bool) dirender dengan fmt.
func stringArgs(params map[string]any) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			out[k] = t
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out
}
