package controllers

import (
	"net/http"

	"github.com/ubnaturals/express-checkout/api/responses"
	"github.com/ubnaturals/express-checkout/api/validators"
	"github.com/ubnaturals/express-checkout/internal/checkout"
	pkgerrors "github.com/ubnaturals/express-checkout/pkg/errors"
	"github.com/ubnaturals/express-checkout/pkg/logger"
)

type applyCouponRequest struct {
	Code string `json:"code" validate:"required,max=40"`
}

// ApplyCoupon applies a coupon code to the session. An unknown code also
// surfaces in the snapshot's coupon_error field so the form can render it
// inline.
func ApplyCoupon(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body applyCouponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code := validators.SanitizeString(body.Code, 40)
		if err := svc.ApplyCoupon(r.Context(), id, code); err != nil {
			if typed := pkgerrors.As(err); typed != nil {
				responses.WriteError(r.Context(), logg, w, typed.WithDetails(map[string]string{"code": code}))
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeState(svc, logg, w, r, id)
	}
}

// RemoveCoupon clears the applied coupon from the session.
func RemoveCoupon(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RemoveCoupon(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeState(svc, logg, w, r, id)
	}
}
