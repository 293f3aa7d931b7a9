package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/hoangsoi/vinashop-backend/api/responses"
	"github.com/hoangsoi/vinashop-backend/api/validators"
	usersvc "github.com/hoangsoi/vinashop-backend/internal/users"
	walletsvc "github.com/hoangsoi/vinashop-backend/internal/wallet"
	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/logger"
)

// AdminUsersList returns all accounts with wallet balances.
func AdminUsersList(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		users, page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]*usersvc.UserDTO, len(users))
		for i := range users {
			items[i] = usersvc.FromModel(&users[i])
		}

		responses.WriteSuccess(w, listPayload{Items: items, Page: page})
	}
}

// AdminUserUpdate lets an admin edit any account's profile fields.
func AdminUserUpdate(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		userID, err := validators.ParseUUIDParam(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), userID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, usersvc.FromModel(user))
	}
}

type adjustBalanceRequest struct {
	Amount      string  `json:"amount" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=add subtract"`
	Description *string `json:"description,omitempty"`
}

type adjustBalanceResponse struct {
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
}

// AdminAdjustBalance applies a manual balance correction to a user's wallet
// and records a matching transaction.
func AdminAdjustBalance(svc walletsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		userID, err := validators.ParseUUIDParam(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adjustBalanceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(body.Amount))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount"))
			return
		}

		direction, err := enums.ParseAdjustmentDirection(strings.TrimSpace(body.Type))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid adjustment type"))
			return
		}

		result, err := svc.Adjust(r.Context(), walletsvc.AdjustInput{
			UserID:    userID,
			Amount:    amount,
			Direction: direction,
			Note:      body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := "Cộng tiền thành công"
		if direction == enums.AdjustmentSubtract {
			message = "Trừ tiền thành công"
		}
		responses.WriteSuccess(w, adjustBalanceResponse{
			Message:     message,
			Transaction: result.Transaction,
			NewBalance:  result.NewBalance,
		})
	}
}
