package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Sources holds configuration shared by the external source clients.
// Per-product URLs and credentials come from the product directory, not
// from here; this only controls how the outbound calls behave.
type Sources struct {
	Timeout time.Duration
}

// Flags returns CLI flags for source client configuration
func (c *Sources) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "source-timeout",
			Usage:       "Per-request timeout for external source calls",
			Value:       10 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("RELSNAP_SOURCE_TIMEOUT"),
		},
	}
}
