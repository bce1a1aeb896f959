// internal/mcp/router.go
// Router MCP: menerima ToolRequest JSON lalu memilih & mengeksekusi capability.

package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"mcp-weather/internal/mcp/llm"
	"mcp-weather/internal/util"
)

// Nama capability default untuk keyword fallback.
const (
	defaultTool  = "get_weather"
	summaryTool  = "weather_summary"
	maxBodyBytes = 1 << 20
)

// ====== Structured log payload ======

type routeLog struct {
	Level       slog.Level
	RequestID   string
	Question    string
	RequestTool string
	ChosenTool  string
	DecisionBy  string // explicit|uri|llm|keyword|default
	Registered  int
	HasLLM      bool
	Duration    time.Duration
	Error       string
}

func (rt *Router) logRoute(ctx context.Context, l routeLog) {
	attrs := []slog.Attr{
		slog.String("event", "mcp.route"),
		slog.String("request_id", l.RequestID),
		slog.String("chosen_tool", l.ChosenTool),
		slog.String("decision_by", l.DecisionBy),
		slog.Int("registered_count", l.Registered),
		slog.Bool("has_llm", l.HasLLM),
		slog.Int64("duration_ms", l.Duration.Milliseconds()),
	}
	if l.Question != "" {
		attrs = append(attrs, slog.String("question", l.Question))
	}
	if l.RequestTool != "" {
		attrs = append(attrs, slog.String("request_tool", l.RequestTool))
	}
	if l.Error != "" {
		attrs = append(attrs, slog.String("error", l.Error))
	}
	rt.log.LogAttrs(ctx, l.Level, "mcp.route", attrs...)
}

// ====== Heuristik ======

// reSummary: permintaan ringkasan/prompt -> weather_summary
var reSummary = regexp.MustCompile(`(?i)\b(prompt|summary|summarize|summarise|ringkas|ringkasan)\b`)

// reCityLead: kata sebelum nama kota, "weather in Paris?", "cuaca di Jakarta"
var reCityLead = regexp.MustCompile(`(?i)\b(?:in|for|at|di|untuk)\s+`)

// Router mengeksekusi capability dari registry. Chooser boleh nil (keyword saja).
type Router struct {
	reg     *Registry
	chooser *llm.Chooser
	log     *slog.Logger
}

func NewRouter(reg *Registry, chooser *llm.Chooser, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{reg: reg, chooser: chooser, log: logger}
}

// ServeHTTP: POST /mcp/route
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := r.Header.Get("X-Request-ID")

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		rt.fail(w, http.StatusBadRequest, util.BadInput("read body error"))
		rt.logRoute(r.Context(), routeLog{Level: slog.LevelError, RequestID: reqID, Error: err.Error()})
		return
	}
	defer r.Body.Close()

	var req ToolRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		rt.fail(w, http.StatusBadRequest, util.BadInput("invalid json"))
		rt.logRoute(r.Context(), routeLog{Level: slog.LevelError, RequestID: reqID, Error: "unmarshal: " + err.Error()})
		return
	}

	resp, decision := rt.Dispatch(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)

	l := routeLog{
		Level:       slog.LevelInfo,
		RequestID:   reqID,
		Question:    questionOf(req.Params),
		RequestTool: req.Tool,
		ChosenTool:  resp.Tool,
		DecisionBy:  decision,
		Registered:  len(rt.reg.Names()),
		HasLLM:      rt.chooser != nil,
		Duration:    time.Since(start),
		Error:       resp.Error,
	}
	if !resp.Success {
		l.Level = slog.LevelWarn
	}
	rt.logRoute(r.Context(), l)
}

func (rt *Router) fail(w http.ResponseWriter, code int, e util.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ToolResponse{Success: false, Error: e.Error()})
}

// Dispatch memilih capability (uri -> explicit -> llm -> keyword -> default)
// lalu mengeksekusinya. Lookup cuaca yang gagal tetap Success=true; teks
// error ada di Data.
func (rt *Router) Dispatch(ctx context.Context, req ToolRequest) (ToolResponse, string) {
	args := stringArgs(req.Params)

	// 0) resource uri
	if uri := strings.TrimSpace(req.URI); uri != "" {
		c, uriArgs, ok := rt.reg.Resolve(uri)
		if !ok {
			return ToolResponse{Success: false, Error: util.NotFound("resource not found: " + uri).Error()}, "uri"
		}
		return rt.invoke(ctx, c.Name, uriArgs), "uri"
	}

	// 1) explicit tool
	if tool := strings.TrimSpace(req.Tool); tool != "" {
		return rt.invoke(ctx, tool, args), "explicit"
	}

	question := strings.TrimSpace(args["question"])
	if question == "" {
		return ToolResponse{Success: false, Error: util.BadInput("tool, uri or params.question is required").Error()}, ""
	}

	// 2) LLM
	tool, decision := "", ""
	if rt.chooser != nil {
		if c, err := rt.chooser.Choose(ctx, question, rt.toolLites()); err == nil {
			tool, decision = c.Tool, "llm"
			if _, ok := args["city"]; !ok && c.City != "" {
				args["city"] = c.City
			}
		} else {
			rt.log.Debug("llm chooser failed, fallback keyword", "error", err)
		}
	}

	// 3) keyword fallback
	if tool == "" {
		tool, decision = defaultTool, "default"
		if reSummary.MatchString(question) {
			tool, decision = summaryTool, "keyword"
		}
	}
	if _, ok := args["city"]; !ok {
		if city := extractCity(question); city != "" {
			args["city"] = city
		}
	}
	delete(args, "question")

	return rt.invoke(ctx, tool, args), decision
}

func (rt *Router) invoke(ctx context.Context, name string, args map[string]string) ToolResponse {
	if _, ok := rt.reg.Get(name); !ok {
		return ToolResponse{Success: false, Tool: name, Error: "tool not found: " + name}
	}
	out, err := rt.reg.Invoke(ctx, name, args)
	if err != nil {
		return ToolResponse{Success: false, Tool: name, Error: err.Error()}
	}
	return ToolResponse{Success: true, Tool: name, Data: out}
}

func (rt *Router) toolLites() []llm.ToolLite {
	caps := rt.reg.List()
	out := make([]llm.ToolLite, 0, len(caps))
	for _, c := range caps {
		if c.Kind == KindResource {
			continue // resource diakses via uri, bukan nama
		}
		desc := c.Description
		if d := Describe(c.Name); d != "" {
			desc = d
		}
		out = append(out, llm.ToolLite{Name: c.Name, Kind: string(c.Kind), Description: desc})
	}
	return out
}

// ====== helpers ======

func questionOf(params map[string]any) string {
	if q, ok := params["question"].(string); ok {
		return q
	}
	return ""
}

// extractCity mengambil teks setelah kata depan terakhir sampai tanda baca:
// "summary for today in Paris?" -> "Paris"
func extractCity(question string) string {
	idx := reCityLead.FindAllStringIndex(question, -1)
	if len(idx) == 0 {
		return ""
	}
	rest := question[idx[len(idx)-1][1]:]
	if cut := strings.IndexAny(rest, "?!.,;"); cut >= 0 {
		rest = rest[:cut]
	}
	return strings.TrimSpace(rest)
}
