package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionProducts  = "products"
	collectionSnapshots = "snapshots"
)

// Client implements the product directory and snapshot store on
// Firestore. Products live in the "products" collection; each product
// holds its snapshots in an append-only "snapshots" subcollection.
type Client struct {
	db *firestore.Client
}

// New creates a Firestore-backed client for the given project
func New(ctx context.Context, projectID string) (*Client, error) {
	db, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID))
	}
	return &Client{db: db}, nil
}

// Close releases the underlying Firestore connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Lookup resolves a product by ID
func (c *Client) Lookup(ctx context.Context, id types.ProductID) (*model.Product, error) {
	doc, err := c.db.Collection(collectionProducts).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrProductNotFound, "product document does not exist",
				goerr.V("product_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get product document", goerr.V("product_id", id))
	}

	var product model.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, goerr.Wrap(err, "failed to decode product document", goerr.V("product_id", id))
	}
	product.ID = id
	return &product, nil
}

// PutProduct registers or replaces a product in the directory
func (c *Client) PutProduct(ctx context.Context, product *model.Product) error {
	_, err := c.db.Collection(collectionProducts).Doc(product.ID.String()).Set(ctx, product)
	if err != nil {
		return goerr.Wrap(err, "failed to put product document", goerr.V("product_id", product.ID))
	}
	return nil
}

// Append stores a snapshot in the product's history. Each snapshot gets
// its own document; existing documents are never touched.
func (c *Client) Append(ctx context.Context, id types.ProductID, snapshot *model.ReleaseSnapshot) error {
	ref := c.db.Collection(collectionProducts).
		Doc(id.String()).
		Collection(collectionSnapshots).
		Doc(snapshot.ID.String())

	if _, err := ref.Create(ctx, snapshot); err != nil {
		return goerr.Wrap(err, "failed to create snapshot document",
			goerr.V("product_id", id),
			goerr.V("snapshot_id", snapshot.ID))
	}
	return nil
}

// List returns the product's snapshots, newest first
func (c *Client) List(ctx context.Context, id types.ProductID) ([]*model.ReleaseSnapshot, error) {
	iter := c.db.Collection(collectionProducts).
		Doc(id.String()).
		Collection(collectionSnapshots).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var snapshots []*model.ReleaseSnapshot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate snapshot documents",
				goerr.V("product_id", id))
		}

		var snapshot model.ReleaseSnapshot
		if err := doc.DataTo(&snapshot); err != nil {
			return nil, goerr.Wrap(err, "failed to decode snapshot document",
				goerr.V("product_id", id))
		}
		snapshots = append(snapshots, &snapshot)
	}

	return snapshots, nil
}
