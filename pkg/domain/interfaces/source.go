package interfaces

import (
	"context"

	"github.com/pqops/relsnap/pkg/domain/model"
)

// QualityClient defines operations against the quality-analysis source
// (SonarQube)
type QualityClient interface {
	// FetchReleaseInfo requests the full metric set for the configured
	// component. Failures are tagged with types.TagSourceNetwork,
	// types.TagSourceUnknownTarget, types.TagSourceRejected or
	// types.TagDecodeFailure.
	FetchReleaseInfo(ctx context.Context, cfg *model.SourceConfig) (*model.MetricSet, error)

	// TestConnection diagnoses reachability and authentication for the
	// given config. It never returns an error: every outcome, including a
	// malformed config, is a ConnectionResult value.
	TestConnection(ctx context.Context, cfg *model.SourceConfig) model.ConnectionResult
}

// SprintClient defines operations against the sprint-tracking source (Jira)
type SprintClient interface {
	// FetchActiveSprints returns the active sprints of the configured
	// board. Error tagging matches QualityClient.FetchReleaseInfo.
	FetchActiveSprints(ctx context.Context, cfg *model.SourceConfig) ([]model.Sprint, error)

	// TestConnection diagnoses reachability and authentication for the
	// given config; it never returns an error.
	TestConnection(ctx context.Context, cfg *model.SourceConfig) model.ConnectionResult
}
