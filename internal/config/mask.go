package config

import "net/url"

// maskURLPassword hides the password part of a connection URL.
func maskURLPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
