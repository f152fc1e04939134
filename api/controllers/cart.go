package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ubnaturals/express-checkout/api/responses"
	"github.com/ubnaturals/express-checkout/api/validators"
	"github.com/ubnaturals/express-checkout/internal/checkout"
	"github.com/ubnaturals/express-checkout/pkg/enums"
	pkgerrors "github.com/ubnaturals/express-checkout/pkg/errors"
	"github.com/ubnaturals/express-checkout/pkg/logger"
)

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=99"`
}

type changeSizeRequest struct {
	Size string `json:"size" validate:"required"`
}

// StartCartEdit switches the cart into editing mode.
func StartCartEdit(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.StartEditing(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeState(svc, logg, w, r, id)
	}
}

// CancelCartEdit discards pending edits and leaves editing mode.
func CancelCartEdit(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.CancelEditing(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeState(svc, logg, w, r, id)
	}
}

// SaveCartEdit commits pending edits to the live cart.
func SaveCartEdit(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SaveChanges(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeState(svc, logg, w, r, id)
	}
}

// UpdateCartItem sets an item quantity in the editing scratch copy.
func UpdateCartItem(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID := chi.URLParam(r, "itemID")

		var body updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateTempQuantity(r.Context(), id, itemID, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeState(svc, logg, w, r, id)
	}
}

// RemoveCartItem drops an item from the editing scratch copy.
func RemoveCartItem(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID := chi.URLParam(r, "itemID")
		if err := svc.RemoveTempItem(r.Context(), id, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeState(svc, logg, w, r, id)
	}
}

// ChangeBottleSize switches the active bottle size for the session.
func ChangeBottleSize(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body changeSizeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		size, err := enums.ParseBottleSize(body.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bottle size"))
			return
		}
		if err := svc.ChangeBottleSize(r.Context(), id, size); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeState(svc, logg, w, r, id)
	}
}
