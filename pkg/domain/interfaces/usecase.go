package interfaces

import (
	"context"

	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
)

// CollectUseCase defines the aggregation run: resolve the product, query
// its configured sources, merge the contributions and persist one snapshot
type CollectUseCase interface {
	// Collect runs one aggregation for the product. A configured but
	// broken source fails the run and nothing is persisted; an
	// unconfigured source contributes an absent marker and the run
	// continues.
	Collect(ctx context.Context, id types.ProductID) (*model.ReleaseSnapshot, error)
}

// ConnectionUseCase diagnoses the configured sources of a product
type ConnectionUseCase interface {
	// TestSonarqube diagnoses the product's quality-analysis config.
	TestSonarqube(ctx context.Context, id types.ProductID) (model.ConnectionResult, error)

	// TestJira diagnoses the product's sprint-tracking config.
	TestJira(ctx context.Context, id types.ProductID) (model.ConnectionResult, error)
}
