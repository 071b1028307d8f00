package http

import (
	"net/http"

	"github.com/m-mizutani/prship/pkg/domain/model"
	"github.com/m-mizutani/prship/pkg/domain/types"
)

func healthHandler(workflowID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, &model.HealthStatus{
			Status:   "healthy",
			Service:  "prship",
			Version:  types.Version,
			Workflow: workflowID,
		})
	}
}
