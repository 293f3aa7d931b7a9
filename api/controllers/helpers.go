package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hoangsoi/vinashop-backend/api/middleware"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/pagination"
)

// listPayload is the envelope for every paginated collection response.
type listPayload struct {
	Items any             `json:"items"`
	Page  pagination.Page `json:"page"`
}

func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}
