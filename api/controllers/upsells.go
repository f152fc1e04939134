package controllers

import (
	"net/http"

	"github.com/ubnaturals/express-checkout/api/responses"
	"github.com/ubnaturals/express-checkout/api/validators"
	"github.com/ubnaturals/express-checkout/internal/checkout"
	"github.com/ubnaturals/express-checkout/pkg/logger"
)

type toggleUpsellRequest struct {
	UpsellID string `json:"upsell_id" validate:"required,max=120"`
}

// ToggleUpsell selects or deselects a pack/combo offer.
func ToggleUpsell(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body toggleUpsellRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.ToggleUpsell(r.Context(), id, validators.SanitizeString(body.UpsellID, 120)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeState(svc, logg, w, r, id)
	}
}
