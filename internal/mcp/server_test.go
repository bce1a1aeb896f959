package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"mcp-weather/internal/mcp"
)

type rpcResult struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, reg *mcp.Registry, method string, params any) json.RawMessage {
	t.Helper()
	s := mcp.NewServer(reg, "weather-test", "test")

	raw, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	msg := s.HandleMessage(context.Background(), raw)
	out, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	var res rpcResult
	if err := json.Unmarshal(out, &res); err != nil {
		t.Fatalf("decode response: %v (%s)", err, out)
	}
	if res.Error != nil {
		t.Fatalf("%s: rpc error %s", method, res.Error.Message)
	}
	return res.Result
}

func TestServerListsTool(t *testing.T) {
	reg := newTestRegistry(t)
	var out struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Required []string `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	_ = json.Unmarshal(call(t, reg, "tools/list", map[string]any{}), &out)
	if len(out.Tools) != 1 || out.Tools[0].Name != "get_weather" {
		t.Fatalf("unexpected tools %+v", out.Tools)
	}
	if len(out.Tools[0].InputSchema.Required) != 1 || out.Tools[0].InputSchema.Required[0] != "city" {
		t.Fatalf("city must be required: %+v", out.Tools[0].InputSchema)
	}
}

func TestServerToolResourcePromptAgree(t *testing.T) {
	reg := newTestRegistry(t)

	var tool struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	_ = json.Unmarshal(call(t, reg, "tools/call", map[string]any{
		"name":      "get_weather",
		"arguments": map[string]any{"city": "Paris"},
	}), &tool)
	if tool.IsError || len(tool.Content) != 1 || tool.Content[0].Text != "Paris: ⛅️ +27°C" {
		t.Fatalf("unexpected tool result %+v", tool)
	}

	var res struct {
		Contents []struct {
			URI      string `json:"uri"`
			MIMEType string `json:"mimeType"`
			Text     string `json:"text"`
		} `json:"contents"`
	}
	_ = json.Unmarshal(call(t, reg, "resources/read", map[string]any{"uri": "weather://Paris"}), &res)
	if len(res.Contents) != 1 || res.Contents[0].Text != tool.Content[0].Text {
		t.Fatalf("resource differs from tool: %+v", res)
	}
	if res.Contents[0].MIMEType != "text/plain" {
		t.Fatalf("unexpected mime %q", res.Contents[0].MIMEType)
	}

	var prompt struct {
		Messages []struct {
			Role    string `json:"role"`
			Content struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	_ = json.Unmarshal(call(t, reg, "prompts/get", map[string]any{
		"name":      "weather_summary",
		"arguments": map[string]string{"city": "Paris"},
	}), &prompt)
	want := "Please provide a detailed weather summary for Paris based on the current conditions."
	if len(prompt.Messages) != 1 || prompt.Messages[0].Role != "user" || prompt.Messages[0].Content.Text != want {
		t.Fatalf("unexpected prompt %+v", prompt)
	}
}
