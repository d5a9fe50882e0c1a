package config

import (
	"io"

	"gopkg.in/yaml.v3"
)

const masked = "********"

// WriteYAML writes the effective configuration with secrets masked.
func (c AppConfig) WriteYAML(w io.Writer) error {
	if c.Auth.JWTSecret != "" {
		c.Auth.JWTSecret = masked
	}
	if c.Database.URL != "" {
		c.Database.URL = maskURLPassword(c.Database.URL)
	}
	if c.Redis.URL != "" {
		c.Redis.URL = maskURLPassword(c.Redis.URL)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
