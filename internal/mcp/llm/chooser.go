// internal/mcp/llm/chooser.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ToolLite: representasi capability untuk prompt (tanpa import mcp untuk hindari cycle)
type ToolLite struct {
	Name        string
	Kind        string
	Description string
}

// Choice adalah keputusan chooser: capability + argumen city.
type Choice struct {
	Tool string `json:"tool"`
	City string `json:"city"`
}

type Chooser struct{ client Client }

func NewChooser(c Client) *Chooser { return &Chooser{client: c} }

// Choose meminta LLM memilih tepat satu capability dari tools.
// Nama yang tidak ada di tools dianggap gagal.
func (ch *Chooser) Choose(ctx context.Context, question string, tools []ToolLite) (Choice, error) {
	if ch == nil || ch.client == nil {
		return Choice{}, fmt.Errorf("llm chooser not configured")
	}
	if len(tools) == 0 {
		return Choice{}, fmt.Errorf("no tools to choose from")
	}

	out, err := ch.client.AnswerJSON(ctx, buildChooserUserPrompt(question, tools), chooserSystemPrompt)
	if err != nil {
		return Choice{}, err
	}

	var c Choice
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		return Choice{}, fmt.Errorf("decode choice: %w; raw=%s", err, out)
	}
	c.Tool = strings.TrimSpace(c.Tool)
	c.City = strings.TrimSpace(c.City)
	for _, t := range tools {
		if strings.EqualFold(t.Name, c.Tool) {
			c.Tool = t.Name
			return c, nil
		}
	}
	return Choice{}, fmt.Errorf("llm chose unknown tool %q", c.Tool)
}

const chooserSystemPrompt = `You are a routing agent for a weather service.
- Pick exactly ONE tool name from the list.
- Extract the city the user asks about.
- Reply with a JSON object only: {"tool": "<name>", "city": "<city>"}.
- If unsure, pick "get_weather".`

func buildChooserUserPrompt(question string, tools []ToolLite) string {
	var b strings.Builder
	b.WriteString("User question:\n")
	b.WriteString(question)
	b.WriteString("\n\nAvailable tools:\n")
	for i, t := range tools {
		desc := strings.TrimSpace(t.Description)
		if len(desc) > 300 {
			desc = desc[:300] + "…"
		}
		b.WriteString(fmt.Sprintf("%d) %s [%s] - %s\n", i+1, t.Name, t.Kind, desc))
	}
	b.WriteString("\nReply with JSON only.")
	return b.String()
}
