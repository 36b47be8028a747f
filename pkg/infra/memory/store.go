package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
)

// Store is an in-memory product directory and snapshot store for local
// development and tests. Snapshots are append-only; entries are never
// mutated after Append returns.
type Store struct {
	mu        sync.RWMutex
	products  map[types.ProductID]*model.Product
	snapshots map[types.ProductID][]*model.ReleaseSnapshot
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		products:  map[types.ProductID]*model.Product{},
		snapshots: map[types.ProductID][]*model.ReleaseSnapshot{},
	}
}

// PutProduct registers or replaces a product in the directory
func (s *Store) PutProduct(product *model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
}

// Lookup resolves a product by ID
func (s *Store) Lookup(_ context.Context, id types.ProductID) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, goerr.Wrap(types.ErrProductNotFound, "product is not registered",
			goerr.V("product_id", id))
	}
	return product, nil
}

// Append adds a snapshot to the product's history
func (s *Store) Append(_ context.Context, id types.ProductID, snapshot *model.ReleaseSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[id] = append(s.snapshots[id], snapshot)
	return nil
}

// List returns the product's snapshots, newest first
func (s *Store) List(_ context.Context, id types.ProductID) ([]*model.ReleaseSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.snapshots[id]
	out := make([]*model.ReleaseSnapshot, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}
