package controllers

import (
	"net/http"
	"strings"

	"github.com/hoangsoi/vinashop-backend/api/responses"
	"github.com/hoangsoi/vinashop-backend/api/validators"
	checkoutsvc "github.com/hoangsoi/vinashop-backend/internal/checkout"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/logger"
	"github.com/hoangsoi/vinashop-backend/pkg/types"
)

type placeOrderRequest struct {
	ShippingAddress *types.Address `json:"shipping_address,omitempty"`
	PaymentMethod   string         `json:"payment_method,omitempty"`
}

// CheckoutPlaceOrder converts the caller's cart into an order, settling the
// wallet debit, stock decrements, and cart clear in one transaction.
func CheckoutPlaceOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body placeOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method := enums.PaymentMethodWallet
		if raw := strings.TrimSpace(body.PaymentMethod); raw != "" {
			parsed, err := enums.ParsePaymentMethod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
				return
			}
			method = parsed
		}

		order, err := svc.PlaceOrder(r.Context(), checkoutsvc.PlaceOrderInput{
			UserID:          userID,
			ShippingAddress: body.ShippingAddress,
			PaymentMethod:   method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
