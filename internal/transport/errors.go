package transport

import (
	"errors"
	"net/http"

	"stockroom/internal/domain"
	"stockroom/internal/middleware"
)

// respondDomainError maps a domain failure onto a transport status code.
// NotFound kinds become 404, the illegal reservation transition becomes 409,
// rejected inputs become 400, anything else is a 500.
func respondDomainError(w http.ResponseWriter, err error) {
	var (
		cancelErr *domain.CannotCancelReservationError
		stockErr  *domain.InsufficientStockError
	)

	switch {
	case domain.IsNotFound(err):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &cancelErr):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.As(err, &stockErr):
		middleware.RespondWithErrorDetails(w, http.StatusBadRequest, err.Error(), map[string]interface{}{
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
	case domain.IsValidation(err):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeOrRespond decodes and validates the request body, writing the error
// response itself when the payload is bad.
func decodeOrRespond(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
