// internal/mcp/tools_json_consistency_test.go

package mcp_test

import (
	"testing"

	mcphandlers "mcp-weather/internal/handlers/mcp"
	"mcp-weather/internal/mcp"
)

// Pastikan semua entry di mcp-tools.json SUDAH diregister dengan kind yang sama.
func TestToolsJsonOnlyContainsRegisteredTools(t *testing.T) {
	defs, err := mcp.LoadToolDefs()
	if err != nil {
		t.Fatalf("LoadToolDefs error: %v", err)
	}
	if len(defs) == 0 {
		t.Fatalf("no tools found in mcp-tools.json")
	}

	reg := mcp.NewRegistry()
	if err := mcphandlers.RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}

	for _, d := range defs {
		c, ok := reg.Get(d.Name)
		if !ok {
			t.Fatalf("tool %q exists in mcp-tools.json but NOT registered in MCP registry", d.Name)
		}
		if c.Kind != d.Kind {
			t.Fatalf("tool %q kind mismatch: json=%s registry=%s", d.Name, d.Kind, c.Kind)
		}
	}
	if mcp.Describe("get_weather") == "" {
		t.Fatalf("expected catalog description for get_weather")
	}
}
