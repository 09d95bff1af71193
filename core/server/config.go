package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// AuthSchemes lists the accepted Authorization header schemes, comma separated.
	AuthSchemes string `mapstructure:"auth_schemes" default:"Token,Bearer"`
	// BodyLimitKB caps request bodies.
	BodyLimitKB int `mapstructure:"body_limit_kb" default:"512"`
}

const (
	SchemeToken  = "Token"
	SchemeBearer = "Bearer"
)

// Schemes returns the configured schemes that are supported.
func (c Config) Schemes() []string {
	var out []string
	for _, s := range strings.Split(c.AuthSchemes, ",") {
		s = strings.TrimSpace(s)
		if IsValidScheme(s) {
			out = append(out, s)
		}
	}
	return out
}

// IsValidScheme checks if s is a supported Authorization scheme.
func IsValidScheme(s string) bool {
	switch s {
	case SchemeToken, SchemeBearer:
		return true
	default:
		return false
	}
}

// BodyLimit returns the body limit in bytes, falling back to fiber's default.
func (c Config) BodyLimit() int {
	if c.BodyLimitKB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitKB * 1024
}
