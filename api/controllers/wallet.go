package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hoangsoi/vinashop-backend/api/responses"
	"github.com/hoangsoi/vinashop-backend/api/validators"
	walletsvc "github.com/hoangsoi/vinashop-backend/internal/wallet"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/logger"
)

type walletMovementRequest struct {
	Amount      string  `json:"amount" validate:"required"`
	Description *string `json:"description,omitempty"`
}

func (r walletMovementRequest) amount() (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount")
	}
	return amount, nil
}

// WalletDeposit credits the caller's balance and records the transaction.
func WalletDeposit(svc walletsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return walletMovement(svc, logg, walletsvc.Service.Deposit)
}

// WalletWithdraw debits the caller's balance, rejecting overdrafts.
func WalletWithdraw(svc walletsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return walletMovement(svc, logg, walletsvc.Service.Withdraw)
}

func walletMovement(svc walletsvc.Service, logg *logger.Logger, move func(walletsvc.Service, context.Context, walletsvc.MovementInput) (*walletsvc.MovementResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body walletMovementRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := body.amount()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := move(svc, r.Context(), walletsvc.MovementInput{
			UserID:      userID,
			Amount:      amount,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// WalletTransactions returns the caller's transaction history.
func WalletTransactions(svc walletsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, page, err := svc.ListMine(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listPayload{Items: items, Page: page})
	}
}
