package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pqops/relsnap/pkg/cli/config"
	"github.com/pqops/relsnap/pkg/domain/types"
	fsinfra "github.com/pqops/relsnap/pkg/infra/firestore"
	"github.com/pqops/relsnap/pkg/infra/jira"
	"github.com/pqops/relsnap/pkg/infra/sonarqube"
	"github.com/pqops/relsnap/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdCollect() *cli.Command {
	var (
		productID    string
		sourcesCfg   config.Sources
		firestoreCfg config.Firestore
	)

	flags := append(sourcesCfg.Flags(), firestoreCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "product-id",
		Usage:       "Product to aggregate",
		Required:    true,
		Destination: &productID,
		Sources:     cli.EnvVars("RELSNAP_PRODUCT_ID"),
	})

	return &cli.Command{
		Name:  "collect",
		Usage: "Run one aggregation for a product and persist the snapshot",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if firestoreCfg.ProjectID == "" {
				return goerr.New("collect requires a Firestore project; an in-memory store would discard the snapshot")
			}

			fsClient, err := fsinfra.New(ctx, firestoreCfg.ProjectID)
			if err != nil {
				return err
			}
			defer fsClient.Close()

			collectUC := usecase.NewCollect(
				fsClient,
				fsClient,
				sonarqube.New(sonarqube.WithTimeout(sourcesCfg.Timeout)),
				jira.New(jira.WithTimeout(sourcesCfg.Timeout)),
			)

			snapshot, err := collectUC.Collect(ctx, types.ProductID(productID))
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Info("Aggregation run complete",
				"product_id", productID,
				"snapshot_id", snapshot.ID,
				"quality_level", snapshot.QualityLevel,
			)
			return nil
		},
	}
}
