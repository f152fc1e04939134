package controllers

import (
	"net/http"

	"github.com/ubnaturals/express-checkout/api/responses"
	"github.com/ubnaturals/express-checkout/api/validators"
	"github.com/ubnaturals/express-checkout/internal/checkout"
	"github.com/ubnaturals/express-checkout/pkg/enums"
	pkgerrors "github.com/ubnaturals/express-checkout/pkg/errors"
	"github.com/ubnaturals/express-checkout/pkg/logger"
)

type changePaymentRequest struct {
	Method string `json:"method" validate:"required"`
}

type changePaymentResponse struct {
	Notice *checkout.SwitchNotice  `json:"notice,omitempty"`
	State  *checkout.StateSnapshot `json:"state"`
}

// ChangePaymentMethod switches between prepaid and COD. When the method
// actually changes the response carries the cost-delta notice alongside the
// fresh snapshot.
func ChangePaymentMethod(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body changePaymentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := enums.ParsePaymentMethod(body.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		notice, err := svc.ChangePaymentMethod(r.Context(), id, method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := svc.GetState(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, changePaymentResponse{Notice: notice, State: state})
	}
}
