package http

import (
	"net/http"

	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "relsnap",
		Version: types.Version,
	}

	writeJSON(w, http.StatusOK, status)
}
