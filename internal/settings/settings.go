// Package settings holds the runtime configuration of the fieldconfig
// server: listen port, request limits and logging.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mrbreo/paradedb/internal/errors"
)

const (
	DefaultPort            = "8080"
	DefaultMaxRequestBytes = 1 << 20
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultGinMode         = "release"
)

// Settings contains all configuration options for the server.
type Settings struct {
	Port            string `toml:"port"`              // Port to listen on (e.g., "8080")
	MaxRequestBytes int64  `toml:"max_request_bytes"` // Upper bound on request body size
	LogLevel        string `toml:"log_level"`         // logrus level name: debug, info, warn, error
	LogFormat       string `toml:"log_format"`        // "text" or "json"
	GinMode         string `toml:"gin_mode"`          // gin mode: debug, release, test
	EnableCORS      bool   `toml:"enable_cors"`       // Add permissive CORS headers
}

// Load reads settings from an optional TOML file, applies FIELDCONFIG_*
// environment overrides, fills defaults and validates the result.
// An empty path skips the file.
func Load(path string) (*Settings, error) {
	var s Settings

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's command line
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse settings from %s: %w", path, err)
		}
	}

	s.applyEnv()
	s.ApplyDefaults()

	if problems := s.Validate(); len(problems) > 0 {
		return nil, errors.NewValidationError("settings", strings.Join(problems, "; "))
	}
	return &s, nil
}

// ApplyDefaults applies default values to unset settings
func (s *Settings) ApplyDefaults() {
	if s.Port == "" {
		s.Port = DefaultPort
	}
	if s.MaxRequestBytes == 0 {
		s.MaxRequestBytes = DefaultMaxRequestBytes
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.LogFormat == "" {
		s.LogFormat = DefaultLogFormat
	}
	if s.GinMode == "" {
		s.GinMode = DefaultGinMode
	}
}

// Validate returns one message per invalid setting.
func (s *Settings) Validate() []string {
	var problems []string

	if port, err := strconv.Atoi(s.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, "Invalid port '"+s.Port+"' (must be 1-65535)")
	}
	if s.MaxRequestBytes < 0 {
		problems = append(problems, "max_request_bytes cannot be negative")
	}

	switch s.LogLevel {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		problems = append(problems, "Invalid log_level '"+s.LogLevel+"'")
	}

	switch s.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, "Invalid log_format '"+s.LogFormat+"' (must be 'text' or 'json')")
	}

	switch s.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, "Invalid gin_mode '"+s.GinMode+"'")
	}

	return problems
}

func (s *Settings) applyEnv() {
	s.Port = GetStringEnv("FIELDCONFIG_PORT", s.Port)
	s.MaxRequestBytes = int64(GetIntEnv("FIELDCONFIG_MAX_REQUEST_BYTES", int(s.MaxRequestBytes)))
	s.LogLevel = GetStringEnv("FIELDCONFIG_LOG_LEVEL", s.LogLevel)
	s.LogFormat = GetStringEnv("FIELDCONFIG_LOG_FORMAT", s.LogFormat)
	s.GinMode = GetStringEnv("FIELDCONFIG_GIN_MODE", s.GinMode)
	s.EnableCORS = GetBoolEnv("FIELDCONFIG_ENABLE_CORS", s.EnableCORS)
}

// GetStringEnv returns the environment value for key or defaultValue when unset.
func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv returns the integer environment value for key or defaultValue
// when unset or unparsable.
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetBoolEnv returns the boolean environment value for key or defaultValue
// when unset or unparsable.
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
