package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hoangsoi/vinashop-backend/api/responses"
	"github.com/hoangsoi/vinashop-backend/api/validators"
	walletsvc "github.com/hoangsoi/vinashop-backend/internal/wallet"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/logger"
)

// AdminTransactionsList returns all wallet transactions with optional type,
// status, and user filters.
func AdminTransactionsList(svc walletsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txnType, err := validators.ParseTransactionTypeQuery(r, "type")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txnStatus, err := validators.ParseTransactionStatusQuery(r, "status")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := walletsvc.ListFilter{Type: txnType, Status: txnStatus}
		if raw := strings.TrimSpace(r.URL.Query().Get("user_id")); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
				return
			}
			filter.UserID = userID
		}

		items, page, err := svc.ListAll(r.Context(), filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listPayload{Items: items, Page: page})
	}
}
