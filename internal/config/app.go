package config

import "os"

// EnvAppBasePath overrides the web module prefix.
const EnvAppBasePath = "APP_BASE_PATH"

// AppConfig contains settings for the server-rendered web module.
type AppConfig struct {
	BasePath string `toml:"base_path"`
}

// Finalize applies defaults, loads environment overrides, and validates the app configuration.
func (c *AppConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/app"
	}
	if v := os.Getenv(EnvAppBasePath); v != "" {
		c.BasePath = v
	}
	return validateBasePath(c.BasePath)
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *AppConfig) Merge(overlay *AppConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
}
