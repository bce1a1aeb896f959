// internal/config/config.go
// Loader konfigurasi dari environment variables (+ .env opsional)
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// BuildVersion diisi saat build via -ldflags "-X mcp-weather/internal/config.BuildVersion=..."
var BuildVersion = "dev"

type Config struct {
	AppName   string `validate:"required"`
	AppEnv    string `validate:"required"`
	AppPort   string `validate:"required,numeric"`
	MCPPort   string `validate:"required,numeric"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	Weather struct {
		BaseURL string `validate:"required,url"`
		// 0 = tanpa timeout khusus (default platform)
		Timeout time.Duration `validate:"gte=0"`
	}

	LLM struct {
		APIKey  string
		BaseURL string `validate:"omitempty,url"`
		Model   string
	}

	Admin struct {
		User      string
		PassHash  string
		JWTSecret string
	}
}

// Load membaca .env (jika ada) lalu environment, kemudian memvalidasi hasilnya.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	c := &Config{}
	c.AppName = getEnv("APP_NAME", "weather-mcp")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppPort = getEnv("APP_PORT", "8080")
	c.MCPPort = getEnv("MCP_PORT", "8090")
	c.LogLevel = getEnv("LOG_LEVEL", "info")
	c.LogFormat = getEnv("LOG_FORMAT", "json")

	c.Weather.BaseURL = getEnv("WEATHER_BASE_URL", "https://wttr.in")
	timeout, err := getEnvDuration("WEATHER_HTTP_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	c.Weather.Timeout = timeout

	// LLM / OpenAI (opsional, untuk chooser di /mcp/route)
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", "")
	c.LLM.BaseURL = getEnv("OPENAI_BASE_URL", "")
	c.LLM.Model = getEnv("OPENAI_MODEL", "gpt-4o-mini")

	c.Admin.User = getEnv("ADMIN_USER", "")
	c.Admin.PassHash = getEnv("ADMIN_PASS_HASH", "")
	c.Admin.JWTSecret = getEnv("ADMIN_JWT_SECRET", "")

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// HasLLM true jika chooser LLM bisa dipakai.
func (c *Config) HasLLM() bool { return c.LLM.APIKey != "" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	// angka polos dianggap detik
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return time.Duration(secs) * time.Second, nil
}
