// internal/mcp/server.go
// Adapter registry -> MCP server (mark3labs/mcp-go): tool, resource template, prompt.

package mcp

import (
	"context"
	"fmt"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer membangun MCPServer dari semua capability di reg.
func NewServer(reg *Registry, name, version string) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	for _, c := range reg.List() {
		switch c.Kind {
		case KindTool:
			s.AddTool(toolOf(c), toolHandler(reg, c))
		case KindResource:
			s.AddResourceTemplate(templateOf(c), resourceHandler(reg, c))
		case KindPrompt:
			s.AddPrompt(promptOf(c), promptHandler(reg, c))
		}
	}
	return s
}

// NewStreamableHTTP membungkus s sebagai http.Handler (transport streamable-http).
func NewStreamableHTTP(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s)
}

// ServeStdio menjalankan s di atas stdin/stdout sampai EOF.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func toolOf(c Capability) mcpgo.Tool {
	opts := []mcpgo.ToolOption{mcpgo.WithDescription(c.Description)}
	for _, p := range c.Params {
		popts := []mcpgo.PropertyOption{mcpgo.Description(p.Description)}
		if p.Required {
			popts = append(popts, mcpgo.Required())
		}
		opts = append(opts, mcpgo.WithString(p.Name, popts...))
	}
	return mcpgo.NewTool(c.Name, opts...)
}

// Hasil tool selalu teks. Lookup cuaca yang gagal bukan IsError; hanya
// error wiring/argumen yang dikembalikan sebagai tool error.
func toolHandler(reg *Registry, c Capability) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		out, err := reg.Invoke(ctx, c.Name, stringArgs(req.GetArguments()))
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
		return mcpgo.NewToolResultText(out), nil
	}
}

func templateOf(c Capability) mcpgo.ResourceTemplate {
	return mcpgo.NewResourceTemplate(c.URITemplate, c.Name,
		mcpgo.WithTemplateDescription(c.Description),
		mcpgo.WithTemplateMIMEType(c.MIMEType),
	)
}

func resourceHandler(reg *Registry, c Capability) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, req mcpgo.ReadResourceRequest) ([]mcpgo.ResourceContents, error) {
		args, ok := matchTemplate(c.URITemplate, req.Params.URI)
		if !ok {
			return nil, fmt.Errorf("uri %s does not match %s", req.Params.URI, c.URITemplate)
		}
		out, err := reg.Invoke(ctx, c.Name, args)
		if err != nil {
			return nil, err
		}
		return []mcpgo.ResourceContents{
			mcpgo.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: c.MIMEType,
				Text:     out,
			},
		}, nil
	}
}

func promptOf(c Capability) mcpgo.Prompt {
	opts := []mcpgo.PromptOption{mcpgo.WithPromptDescription(c.Description)}
	for _, p := range c.Params {
		aopts := []mcpgo.ArgumentOption{mcpgo.ArgumentDescription(p.Description)}
		if p.Required {
			aopts = append(aopts, mcpgo.RequiredArgument())
		}
		opts = append(opts, mcpgo.WithArgument(p.Name, aopts...))
	}
	return mcpgo.NewPrompt(c.Name, opts...)
}

func promptHandler(reg *Registry, c Capability) server.PromptHandlerFunc {
	return func(ctx context.Context, req mcpgo.GetPromptRequest) (*mcpgo.GetPromptResult, error) {
		out, err := reg.Invoke(ctx, c.Name, req.Params.Arguments)
		if err != nil {
			return nil, err
		}
		return mcpgo.NewGetPromptResult(c.Description, []mcpgo.PromptMessage{
			mcpgo.NewPromptMessage(mcpgo.RoleUser, mcpgo.NewTextContent(out)),
		}), nil
	}
}
