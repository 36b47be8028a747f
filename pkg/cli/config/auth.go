package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Auth holds API token configuration. The signing secret is an explicit
// construction-time value for the token issuer, never process-wide state.
type Auth struct {
	Secret        string
	TokenLifetime time.Duration
}

// Flags returns CLI flags for auth configuration
func (c *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token-secret",
			Usage:       "HMAC secret for signing API tokens (empty: API auth disabled)",
			Destination: &c.Secret,
			Sources:     cli.EnvVars("RELSNAP_TOKEN_SECRET"),
		},
		&cli.DurationFlag{
			Name:        "token-lifetime",
			Usage:       "Validity window of issued API tokens",
			Value:       24 * time.Hour,
			Destination: &c.TokenLifetime,
			Sources:     cli.EnvVars("RELSNAP_TOKEN_LIFETIME"),
		},
	}
}
