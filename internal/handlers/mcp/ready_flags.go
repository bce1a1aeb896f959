// internal/handlers/mcp/ready_flags.go
package mcp

// Flag readiness per dependency; diset dari Set*(..) masing-masing handler.
var (
	readyWeather bool
)

// ReadyStatus mengembalikan status siap/tidaknya setiap dependency capability.
func ReadyStatus() map[string]bool {
	return map[string]bool{
		"weather": readyWeather,
	}
}
