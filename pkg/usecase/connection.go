package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pqops/relsnap/pkg/domain/interfaces"
	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
)

type connectionUseCase struct {
	directory interfaces.ProductDirectory
	quality   interfaces.QualityClient
	sprints   interfaces.SprintClient
}

// NewConnection creates the connection diagnosis use case
func NewConnection(
	directory interfaces.ProductDirectory,
	quality interfaces.QualityClient,
	sprints interfaces.SprintClient,
) interfaces.ConnectionUseCase {
	return &connectionUseCase{
		directory: directory,
		quality:   quality,
		sprints:   sprints,
	}
}

// TestSonarqube diagnoses the product's quality-analysis configuration.
// The only error case is an unknown product; every diagnosis outcome,
// including a missing config, is a ConnectionResult value.
func (uc *connectionUseCase) TestSonarqube(ctx context.Context, id types.ProductID) (model.ConnectionResult, error) {
	product, err := uc.directory.Lookup(ctx, id)
	if err != nil {
		return model.ConnectionResult{}, goerr.Wrap(err, "failed to resolve product", goerr.V("product_id", id))
	}

	if product.Sonarqube == nil {
		return model.ConnectionFailure("no quality-analysis source configured"), nil
	}
	return uc.quality.TestConnection(ctx, product.Sonarqube), nil
}

// TestJira diagnoses the product's sprint-tracking configuration.
func (uc *connectionUseCase) TestJira(ctx context.Context, id types.ProductID) (model.ConnectionResult, error) {
	product, err := uc.directory.Lookup(ctx, id)
	if err != nil {
		return model.ConnectionResult{}, goerr.Wrap(err, "failed to resolve product", goerr.V("product_id", id))
	}

	if product.Jira == nil {
		return model.ConnectionFailure("no sprint-tracking source configured"), nil
	}
	return uc.sprints.TestConnection(ctx, product.Jira), nil
}
