package http

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/pqops/relsnap/pkg/domain/interfaces"
	"github.com/pqops/relsnap/pkg/domain/types"
)

// productHandler exposes aggregation and diagnosis operations per product
type productHandler struct {
	collectUC    interfaces.CollectUseCase
	connectionUC interfaces.ConnectionUseCase
	store        interfaces.SnapshotStore
}

func newProductHandler(
	collectUC interfaces.CollectUseCase,
	connectionUC interfaces.ConnectionUseCase,
	store interfaces.SnapshotStore,
) *productHandler {
	return &productHandler{
		collectUC:    collectUC,
		connectionUC: connectionUC,
		store:        store,
	}
}

// Collect runs one aggregation for the product and returns the persisted
// snapshot. A failed run writes nothing and reports which source failed.
func (h *productHandler) Collect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := types.ProductID(chi.URLParam(r, "productID"))

	snapshot, err := h.collectUC.Collect(ctx, productID)
	if err != nil {
		ctxlog.From(ctx).Error("Aggregation run failed",
			"product_id", productID,
			"error", err,
		)
		sentry.CaptureException(err)
		writeError(w, err, statusFromError(err))
		return
	}

	writeJSON(w, http.StatusCreated, snapshot)
}

// ListSnapshots returns the product's snapshot history, newest first
func (h *productHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := types.ProductID(chi.URLParam(r, "productID"))

	snapshots, err := h.store.List(ctx, productID)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to list snapshots",
			"product_id", productID,
			"error", err,
		)
		writeError(w, err, statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": productID,
		"snapshots":  snapshots,
	})
}

// TestSonarqube diagnoses the product's quality-analysis connection.
// Diagnosis outcomes are always 200 with a ConnectionResult body; only an
// unknown product is an error status.
func (h *productHandler) TestSonarqube(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := types.ProductID(chi.URLParam(r, "productID"))

	result, err := h.connectionUC.TestSonarqube(ctx, productID)
	if err != nil {
		writeError(w, err, statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// TestJira diagnoses the product's sprint-tracking connection
func (h *productHandler) TestJira(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := types.ProductID(chi.URLParam(r, "productID"))

	result, err := h.connectionUC.TestJira(ctx, productID)
	if err != nil {
		writeError(w, err, statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}
