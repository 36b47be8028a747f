package interfaces

import (
	"context"

	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
)

// ProductDirectory resolves a product and its source configurations
type ProductDirectory interface {
	// Lookup returns the product for the given ID, or an error wrapping
	// types.ErrProductNotFound when it does not exist.
	Lookup(ctx context.Context, id types.ProductID) (*model.Product, error)
}

// SnapshotStore persists release snapshots append-only, keyed by product.
// Append must be durable before returning and must never mutate or remove
// prior entries.
type SnapshotStore interface {
	Append(ctx context.Context, id types.ProductID, snapshot *model.ReleaseSnapshot) error

	// List returns the snapshots of a product, newest first.
	List(ctx context.Context, id types.ProductID) ([]*model.ReleaseSnapshot, error)
}
