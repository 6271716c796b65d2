package config

import "errors"

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address        string   `json:"address"`
	MaxUploadBytes int64    `json:"max_upload_bytes"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = 1 << 20
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.MaxUploadBytes < 0 {
		return errors.New("max_upload_bytes must not be negative")
	}
	return nil
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string `json:"level"`
}

// SetDefaults applies the info level.
func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}
