// internal/mcp/llm/openai.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client adalah kontrak minimal yang dipakai chooser di router.
type Client interface {
	// Jawaban dalam format JSON object valid, agar output bisa di-unmarshal.
	AnswerJSON(ctx context.Context, user, system string) (string, error)
	Model() string
}

// Options untuk NewClient; APIKey wajib.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIClient adalah implementasi Client berbasis go-openai.
type OpenAIClient struct {
	api   *openai.Client
	model string
}

func NewClient(o Options) (Client, error) {
	key := strings.TrimSpace(o.APIKey)
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}

	cfg := openai.DefaultConfig(key)
	if base := strings.TrimSpace(o.BaseURL); base != "" {
		cfg.BaseURL = base
	}

	model := strings.TrimSpace(o.Model)
	if model == "" {
		model = "gpt-4o-mini" // default ringan, mendukung JSON mode
	}

	return &OpenAIClient{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}, nil
}

func (c *OpenAIClient) Model() string { return c.model }

// AnswerJSON meminta model merespons JSON object valid (JSON mode).
func (c *OpenAIClient) AnswerJSON(ctx context.Context, user, system string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	// deadline singkat untuk tahap routing
	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, 8*time.Second)
		defer cancel()
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai completion (json): %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices")
	}
	return stripFence(resp.Choices[0].Message.Content), nil
}

// stripFence membersihkan bila model menyelipkan ```json ... ```
func stripFence(out string) string {
	out = strings.TrimSpace(out)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```JSON")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}
