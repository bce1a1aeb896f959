// mcp/registry.go
// Registri capability MCP (tool, resource, prompt) yang dibangun sekali saat startup.

package mcp

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
)

type Kind string

const (
	KindTool     Kind = "tool"
	KindResource Kind = "resource"
	KindPrompt   Kind = "prompt"
)

// Param mendeskripsikan satu argumen string capability.
type Param struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// InvokeFunc menerima argumen by-name dan mengembalikan teks.
type InvokeFunc func(ctx context.Context, args map[string]string) (string, error)

type Capability struct {
	Name        string
	Kind        Kind
	Description string
	Params      []Param
	// hanya untuk resource, misal "weather://{city}"
	URITemplate string
	MIMEType    string
	Invoke      InvokeFunc
}

// Schema merender Params sebagai JSON Schema object.
func (c Capability) Schema() map[string]any {
	props := make(map[string]any, len(c.Params))
	required := make([]string, 0, len(c.Params))
	for _, p := range c.Params {
		props[p.Name] = map[string]any{
			"type":        "string",
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Registry menyimpan peta nama -> Capability secara thread-safe.
type Registry struct {
	mu   sync.RWMutex
	data map[string]Capability
}

func NewRegistry() *Registry {
	return &Registry{data: make(map[string]Capability)}
}

// Register mendaftarkan capability. Nama ganda atau tanpa Invoke ditolak.
func (r *Registry) Register(c Capability) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("mcp: capability name is empty")
	}
	if c.Invoke == nil {
		return fmt.Errorf("mcp: capability %s has no invoke func", name)
	}
	if c.Kind == KindResource && !strings.Contains(c.URITemplate, "{") {
		return fmt.Errorf("mcp: resource %s needs a uri template", name)
	}
	c.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[name]; exists {
		return fmt.Errorf("mcp: capability %s already registered", name)
	}
	r.data[name] = c
	return nil
}

func (r *Registry) Get(name string) (Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.data[name]
	return c, ok
}

// MustGet seperti Get namun panic jika tidak ditemukan (fail-fast saat startup).
func (r *Registry) MustGet(name string) Capability {
	if c, ok := r.Get(name); ok {
		return c
	}
	panic(fmt.Sprintf("mcp: capability not found: %s", name))
}

// List mengembalikan semua capability, urut nama.
func (r *Registry) List() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Capability, 0, len(r.data))
	for _, c := range r.data {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) ListKind(k Kind) []Capability {
	var out []Capability
	for _, c := range r.List() {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) Names() []string {
	caps := r.List()
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = c.Name
	}
	return names
}

// Invoke menjalankan capability 'name'. Argumen wajib yang tidak ada -> error.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]string) (string, error) {
	c, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("tool not found: %s", name)
	}
	for _, p := range c.Params {
		if _, ok := args[p.Name]; p.Required && !ok {
			return "", fmt.Errorf("missing required parameter: %s", p.Name)
		}
	}
	if args == nil {
		args = map[string]string{}
	}
	return c.Invoke(ctx, args)
}

// Resolve mencocokkan uri dengan template resource terdaftar.
// Template yang didukung: "<prefix>{param}" dengan satu variabel di akhir.
func (r *Registry) Resolve(uri string) (Capability, map[string]string, bool) {
	for _, c := range r.ListKind(KindResource) {
		if args, ok := matchTemplate(c.URITemplate, uri); ok {
			return c, args, true
		}
	}
	return Capability{}, nil, false
}

func matchTemplate(tmpl, uri string) (map[string]string, bool) {
	open := strings.Index(tmpl, "{")
	if open < 0 || !strings.HasSuffix(tmpl, "}") {
		return nil, false
	}
	prefix := tmpl[:open]
	name := tmpl[open+1 : len(tmpl)-1]
	if !strings.HasPrefix(uri, prefix) {
		return nil, false
	}
	val := strings.TrimPrefix(uri, prefix)
	if v, err := url.PathUnescape(val); err == nil {
		val = v
	}
	return map[string]string{name: val}, true
}
