package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pqops/relsnap/pkg/domain/interfaces"
	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

type collectUseCase struct {
	directory interfaces.ProductDirectory
	store     interfaces.SnapshotStore
	quality   interfaces.QualityClient
	sprints   interfaces.SprintClient
}

// NewCollect creates the aggregation use case
func NewCollect(
	directory interfaces.ProductDirectory,
	store interfaces.SnapshotStore,
	quality interfaces.QualityClient,
	sprints interfaces.SprintClient,
) interfaces.CollectUseCase {
	return &collectUseCase{
		directory: directory,
		store:     store,
		quality:   quality,
		sprints:   sprints,
	}
}

// Collect runs one aggregation for the product and appends the resulting
// snapshot to the store.
//
// A source that is not configured (or whose config fails the validity
// check) contributes an absent marker and the run continues; a source
// that is validly configured but unreachable or undecodable fails the
// whole run and nothing is persisted. The two source fetches run
// concurrently and their results are combined only after both complete.
func (uc *collectUseCase) Collect(ctx context.Context, id types.ProductID) (*model.ReleaseSnapshot, error) {
	logger := ctxlog.From(ctx)

	product, err := uc.directory.Lookup(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve product", goerr.V("product_id", id))
	}

	var (
		metrics       *model.MetricSet
		activeSprints = []model.Sprint{}
	)

	eg, egCtx := errgroup.WithContext(ctx)

	if product.HasValidSonarqubeConfig() {
		eg.Go(func() error {
			m, err := uc.quality.FetchReleaseInfo(egCtx, product.Sonarqube)
			if err != nil {
				return goerr.Wrap(err, "quality-analysis fetch failed", goerr.V("product_id", id))
			}
			metrics = m
			return nil
		})
	} else {
		logger.Debug("No quality-analysis source configured, contribution is absent",
			"product_id", id)
	}

	if product.HasValidJiraConfig() {
		eg.Go(func() error {
			s, err := uc.sprints.FetchActiveSprints(egCtx, product.Jira)
			if err != nil {
				return goerr.Wrap(err, "sprint-tracking fetch failed", goerr.V("product_id", id))
			}
			activeSprints = s
			return nil
		})
	} else {
		logger.Debug("No sprint-tracking source configured, contribution is empty",
			"product_id", id)
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "aggregation cancelled before persisting")
	}

	snapshot := &model.ReleaseSnapshot{
		ID:           types.SnapshotID(uuid.NewString()),
		ProductID:    id,
		CreatedAt:    time.Now().UTC(),
		Metrics:      metrics,
		Sprints:      activeSprints,
		QualityLevel: model.ComputeQualityLevel(metrics),
	}

	if err := uc.store.Append(ctx, id, snapshot); err != nil {
		return nil, goerr.Wrap(err, "failed to append snapshot", goerr.V("product_id", id))
	}

	logger.Info("Release snapshot persisted",
		"product_id", id,
		"snapshot_id", snapshot.ID,
		"quality_level", snapshot.QualityLevel,
		"has_metrics", metrics != nil,
		"active_sprints", len(activeSprints),
	)

	return snapshot, nil
}
