package controllers

import (
	"net/http"

	"github.com/hoangsoi/vinashop-backend/api/responses"
	statsvc "github.com/hoangsoi/vinashop-backend/internal/stats"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/logger"
)

// AdminStats returns the dashboard counters.
func AdminStats(svc statsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stats service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
