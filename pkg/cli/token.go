package cli

import (
	"context"
	"fmt"

	"github.com/pqops/relsnap/pkg/cli/config"
	"github.com/pqops/relsnap/pkg/utils/authtoken"
	"github.com/urfave/cli/v3"
)

func cmdToken() *cli.Command {
	var (
		subject string
		authCfg config.Auth
	)

	flags := append(authCfg.Flags(), &cli.StringFlag{
		Name:        "subject",
		Usage:       "Subject claim of the issued token",
		Required:    true,
		Destination: &subject,
	})

	return &cli.Command{
		Name:  "token",
		Usage: "Issue an API access token",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			issuer, err := authtoken.New(authCfg.Secret, authCfg.TokenLifetime)
			if err != nil {
				return err
			}

			signed, err := issuer.Issue(subject)
			if err != nil {
				return err
			}

			fmt.Println(signed)
			return nil
		},
	}
}
