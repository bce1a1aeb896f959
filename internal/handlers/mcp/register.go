// internal/handlers/mcp/register.go
package mcp

import (
	"fmt"

	"mcp-weather/internal/mcp"
)

// Nama capability yang diekspos ke host.
const (
	ToolGetWeather         = "get_weather"
	ResourceWeather        = "weather_resource"
	PromptWeatherSummary   = "weather_summary"
	WeatherResourceURITmpl = "weather://{city}"
)

var cityParam = mcp.Param{Name: "city", Description: "City name, e.g. Jakarta", Required: true}

// RegisterAll mendaftarkan tool, resource dan prompt cuaca ke reg.
func RegisterAll(reg *mcp.Registry) error {
	caps := []mcp.Capability{
		{
			Name:        ToolGetWeather,
			Kind:        mcp.KindTool,
			Description: "Get weather for a specific city",
			Params:      []mcp.Param{cityParam},
			Invoke:      GetWeather,
		},
		{
			Name:        ResourceWeather,
			Kind:        mcp.KindResource,
			Description: "Get weather for a city as a resource",
			Params:      []mcp.Param{cityParam},
			URITemplate: WeatherResourceURITmpl,
			MIMEType:    "text/plain",
			Invoke:      GetWeatherResource,
		},
		{
			Name:        PromptWeatherSummary,
			Kind:        mcp.KindPrompt,
			Description: "Generate a prompt to summarize weather",
			Params:      []mcp.Param{cityParam},
			Invoke:      WeatherSummary,
		},
	}
	for _, c := range caps {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register %s: %w", c.Name, err)
		}
	}
	return nil
}
