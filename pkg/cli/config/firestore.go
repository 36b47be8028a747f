package config

import "github.com/urfave/cli/v3"

// Firestore holds Firestore configuration. When ProjectID is empty the
// service falls back to the in-memory store (local development).
type Firestore struct {
	ProjectID string
}

// Flags returns CLI flags for Firestore configuration
func (c *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "Google Cloud Project ID for Firestore (empty: in-memory store)",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("RELSNAP_FIRESTORE_PROJECT"),
		},
	}
}
