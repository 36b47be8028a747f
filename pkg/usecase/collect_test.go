package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
	"github.com/pqops/relsnap/pkg/infra/memory"
	"github.com/pqops/relsnap/pkg/usecase"
)

// MockQualityClient is a mock implementation of QualityClient
type MockQualityClient struct {
	fetchFunc  func(ctx context.Context, cfg *model.SourceConfig) (*model.MetricSet, error)
	fetchCalls int
}

func (m *MockQualityClient) FetchReleaseInfo(ctx context.Context, cfg *model.SourceConfig) (*model.MetricSet, error) {
	m.fetchCalls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, cfg)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockQualityClient) TestConnection(ctx context.Context, cfg *model.SourceConfig) model.ConnectionResult {
	return model.ConnectionOK()
}

// MockSprintClient is a mock implementation of SprintClient
type MockSprintClient struct {
	fetchFunc  func(ctx context.Context, cfg *model.SourceConfig) ([]model.Sprint, error)
	fetchCalls int
}

func (m *MockSprintClient) FetchActiveSprints(ctx context.Context, cfg *model.SourceConfig) ([]model.Sprint, error) {
	m.fetchCalls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, cfg)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockSprintClient) TestConnection(ctx context.Context, cfg *model.SourceConfig) model.ConnectionResult {
	return model.ConnectionOK()
}

// CountingStore wraps the in-memory store to count appends
type CountingStore struct {
	*memory.Store
	appendCalls int
}

func (s *CountingStore) Append(ctx context.Context, id types.ProductID, snapshot *model.ReleaseSnapshot) error {
	s.appendCalls++
	return s.Store.Append(ctx, id, snapshot)
}

func validSonarqubeConfig() *model.SourceConfig {
	return &model.SourceConfig{
		BaseURL:     "http://q.example",
		TargetID:    "comp-1",
		AccessToken: "t",
	}
}

func validJiraConfig() *model.SourceConfig {
	return &model.SourceConfig{
		BaseURL:      "http://j.example",
		TargetID:     "42",
		AccessToken:  "t",
		UserIdentity: "dev@example.com",
	}
}

func testMetrics() *model.MetricSet {
	return &model.MetricSet{
		SecurityRating:        1.0,
		ReliabilityRating:     2.0,
		MaintainabilityRating: 3.0,
		Vulnerabilities:       4,
		Bugs:                  7,
		DebtMinutes:           120,
		CodeSmells:            54,
	}
}

func TestCollect_NeitherSourceConfigured(t *testing.T) {
	store := &CountingStore{Store: memory.New()}
	store.PutProduct(&model.Product{ID: "p1", Name: "bare product"})

	quality := &MockQualityClient{}
	sprints := &MockSprintClient{}
	uc := usecase.NewCollect(store, store, quality, sprints)

	snapshot, err := uc.Collect(context.Background(), "p1")
	gt.NoError(t, err)

	gt.Value(t, snapshot.Metrics).Nil()
	gt.Value(t, len(snapshot.Sprints)).Equal(0)
	gt.Value(t, snapshot.QualityLevel).Equal(0.0)
	gt.Value(t, snapshot.ProductID).Equal(types.ProductID("p1"))
	gt.Value(t, store.appendCalls).Equal(1)
	gt.Value(t, quality.fetchCalls).Equal(0)
	gt.Value(t, sprints.fetchCalls).Equal(0)
}

func TestCollect_InvalidConfigTreatedAsAbsent(t *testing.T) {
	store := &CountingStore{Store: memory.New()}
	store.PutProduct(&model.Product{
		ID: "p1",
		// Relative base URL and missing board ID fail the validity check,
		// so neither source is queried.
		Sonarqube: &model.SourceConfig{BaseURL: "not-absolute", TargetID: "comp-1"},
		Jira:      &model.SourceConfig{BaseURL: "http://j.example"},
	})

	quality := &MockQualityClient{}
	sprints := &MockSprintClient{}
	uc := usecase.NewCollect(store, store, quality, sprints)

	snapshot, err := uc.Collect(context.Background(), "p1")
	gt.NoError(t, err)

	gt.Value(t, snapshot.Metrics).Nil()
	gt.Value(t, len(snapshot.Sprints)).Equal(0)
	gt.Value(t, quality.fetchCalls).Equal(0)
	gt.Value(t, sprints.fetchCalls).Equal(0)
	gt.Value(t, store.appendCalls).Equal(1)
}

func TestCollect_ConfiguredQualitySourceFailureFailsRun(t *testing.T) {
	store := &CountingStore{Store: memory.New()}
	store.PutProduct(&model.Product{ID: "p1", Sonarqube: validSonarqubeConfig()})

	quality := &MockQualityClient{
		fetchFunc: func(ctx context.Context, cfg *model.SourceConfig) (*model.MetricSet, error) {
			return nil, goerr.Wrap(types.ErrSourceUnavailable, "component not found",
				goerr.T(types.TagSourceUnknownTarget))
		},
	}
	uc := usecase.NewCollect(store, store, quality, &MockSprintClient{})

	_, err := uc.Collect(context.Background(), "p1")

	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrSourceUnavailable))
	gt.True(t, goerr.HasTag(err, types.TagSourceUnknownTarget))
	gt.Value(t, store.appendCalls).Equal(0)
}

func TestCollect_ConfiguredSprintSourceFailureFailsRun(t *testing.T) {
	store := &CountingStore{Store: memory.New()}
	store.PutProduct(&model.Product{ID: "p1", Jira: validJiraConfig()})

	sprints := &MockSprintClient{
		fetchFunc: func(ctx context.Context, cfg *model.SourceConfig) ([]model.Sprint, error) {
			return nil, goerr.Wrap(types.ErrSourceUnavailable, "jira rejected the request",
				goerr.T(types.TagSourceRejected))
		},
	}
	uc := usecase.NewCollect(store, store, &MockQualityClient{}, sprints)

	_, err := uc.Collect(context.Background(), "p1")

	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.TagSourceRejected))
	gt.Value(t, store.appendCalls).Equal(0)
}

func TestCollect_DecodeErrorNotReclassified(t *testing.T) {
	store := &CountingStore{Store: memory.New()}
	store.PutProduct(&model.Product{ID: "p1", Sonarqube: validSonarqubeConfig()})

	quality := &MockQualityClient{
		fetchFunc: func(ctx context.Context, cfg *model.SourceConfig) (*model.MetricSet, error) {
			return nil, goerr.Wrap(types.ErrPayloadDecode, "measures payload is malformed",
				goerr.T(types.TagDecodeFailure))
		},
	}
	uc := usecase.NewCollect(store, store, quality, &MockSprintClient{})

	_, err := uc.Collect(context.Background(), "p1")

	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrPayloadDecode))
	gt.True(t, goerr.HasTag(err, types.TagDecodeFailure))
	gt.False(t, goerr.HasTag(err, types.TagSourceNetwork))
	gt.Value(t, store.appendCalls).Equal(0)
}

func TestCollect_ProductNotFound(t *testing.T) {
	store := &CountingStore{Store: memory.New()}

	quality := &MockQualityClient{}
	sprints := &MockSprintClient{}
	uc := usecase.NewCollect(store, store, quality, sprints)

	_, err := uc.Collect(context.Background(), "missing")

	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrProductNotFound))
	gt.Value(t, quality.fetchCalls).Equal(0)
	gt.Value(t, sprints.fetchCalls).Equal(0)
	gt.Value(t, store.appendCalls).Equal(0)
}

func TestCollect_QualityOnlyEndToEnd(t *testing.T) {
	store := &CountingStore{Store: memory.New()}
	store.PutProduct(&model.Product{ID: "p1", Sonarqube: validSonarqubeConfig()})

	metrics := testMetrics()
	quality := &MockQualityClient{
		fetchFunc: func(ctx context.Context, cfg *model.SourceConfig) (*model.MetricSet, error) {
			gt.Value(t, cfg.BaseURL).Equal("http://q.example")
			gt.Value(t, cfg.TargetID).Equal("comp-1")
			return metrics, nil
		},
	}
	uc := usecase.NewCollect(store, store, quality, &MockSprintClient{})

	snapshot, err := uc.Collect(context.Background(), "p1")
	gt.NoError(t, err)

	gt.Value(t, snapshot.Metrics).Equal(metrics)
	gt.Value(t, len(snapshot.Sprints)).Equal(0)
	gt.Value(t, snapshot.QualityLevel).Equal(model.ComputeQualityLevel(metrics))
	gt.Value(t, snapshot.ID).NotEqual(types.SnapshotID(""))
	gt.Value(t, store.appendCalls).Equal(1)

	// The persisted entry is the same snapshot, newest first.
	history, err := store.List(context.Background(), "p1")
	gt.NoError(t, err)
	gt.Value(t, len(history)).Equal(1)
	gt.Value(t, history[0].ID).Equal(snapshot.ID)
}

func TestCollect_BothSourcesMerged(t *testing.T) {
	store := &CountingStore{Store: memory.New()}
	store.PutProduct(&model.Product{
		ID:        "p1",
		Sonarqube: validSonarqubeConfig(),
		Jira:      validJiraConfig(),
	})

	metrics := testMetrics()
	quality := &MockQualityClient{
		fetchFunc: func(ctx context.Context, cfg *model.SourceConfig) (*model.MetricSet, error) {
			return metrics, nil
		},
	}
	sprints := &MockSprintClient{
		fetchFunc: func(ctx context.Context, cfg *model.SourceConfig) ([]model.Sprint, error) {
			return []model.Sprint{{ID: 37, Name: "Sprint 12", State: "active"}}, nil
		},
	}
	uc := usecase.NewCollect(store, store, quality, sprints)

	snapshot, err := uc.Collect(context.Background(), "p1")
	gt.NoError(t, err)

	gt.Value(t, snapshot.Metrics).Equal(metrics)
	gt.Value(t, len(snapshot.Sprints)).Equal(1)
	gt.Value(t, snapshot.Sprints[0].Name).Equal("Sprint 12")
	gt.Value(t, quality.fetchCalls).Equal(1)
	gt.Value(t, sprints.fetchCalls).Equal(1)
	gt.Value(t, store.appendCalls).Equal(1)
}

func TestCollect_CancelledContext(t *testing.T) {
	store := &CountingStore{Store: memory.New()}
	store.PutProduct(&model.Product{ID: "p1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := usecase.NewCollect(store, store, &MockQualityClient{}, &MockSprintClient{})

	_, err := uc.Collect(ctx, "p1")
	gt.Error(t, err)
	gt.Value(t, store.appendCalls).Equal(0)
}
