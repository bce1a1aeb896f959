// internal/mcp/tools_def.go
package mcp

import (
	_ "embed"
	"encoding/json"
	"sync"
)

// letakkan file di paket ini (tanpa "..")
//go:embed mcp-tools.json
var toolsJSON []byte

type ToolDef struct {
	Name        string          `json:"name"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}
type ToolCatalog struct {
	Tools []ToolDef `json:"tools"`
}

var (
	toolDefs     []ToolDef
	toolDefsOnce sync.Once
	toolDefsErr  error
)

func LoadToolDefs() ([]ToolDef, error) {
	toolDefsOnce.Do(func() {
		var cat ToolCatalog
		if err := json.Unmarshal(toolsJSON, &cat); err != nil {
			toolDefsErr = err
			return
		}
		toolDefs = cat.Tools
	})
	return toolDefs, toolDefsErr
}

// Describe mengambil deskripsi katalog untuk name (dipakai jika capability
// didaftarkan tanpa Description).
func Describe(name string) string {
	defs, err := LoadToolDefs()
	if err != nil {
		return ""
	}
	for _, d := range defs {
		if d.Name == name {
			return d.Description
		}
	}
	return ""
}
