package model

import (
	"time"

	"github.com/pqops/relsnap/pkg/domain/types"
)

// Sprint is an active sprint record from the sprint-tracking source.
// Fields are passed through to the snapshot unchanged; this service does
// not interpret them.
type Sprint struct {
	ID        int64      `json:"id" firestore:"id"`
	Name      string     `json:"name" firestore:"name"`
	State     string     `json:"state" firestore:"state"`
	StartDate *time.Time `json:"start_date,omitempty" firestore:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" firestore:"end_date,omitempty"`
	Goal      string     `json:"goal,omitempty" firestore:"goal,omitempty"`
}

// ReleaseSnapshot is one immutable aggregation result for a product.
// Metrics is nil when the product has no quality-analysis source
// configured; Sprints is empty when no sprint-tracking source is
// configured or no sprint is active. Snapshots are persisted append-only
// and never updated.
type ReleaseSnapshot struct {
	ID           types.SnapshotID `json:"id" firestore:"id"`
	ProductID    types.ProductID  `json:"product_id" firestore:"product_id"`
	CreatedAt    time.Time        `json:"created_at" firestore:"created_at"`
	Metrics      *MetricSet       `json:"metrics" firestore:"metrics"`
	Sprints      []Sprint         `json:"sprints" firestore:"sprints"`
	QualityLevel float64          `json:"quality_level" firestore:"quality_level"`
}
