package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"masterblog/app/models"
	"masterblog/app/services"
	"masterblog/app/storage"
)

// sendJSON writes v as the response body with the given status.
func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// sendError writes the shared {"error": msg} body.
func sendError(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, map[string]string{"error": msg})
}

// sendFailure maps an error from the service layer to a transport status:
// validation 400, unknown ids 404, ownership 403, bad credentials 401,
// duplicate registration 409, storage failures 500.
func sendFailure(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		sendError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, storage.ErrNotFound):
		sendError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		sendError(w, http.StatusForbidden, "You can only delete your own comments")
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		sendError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUserExists):
		sendError(w, http.StatusConflict, "Username already exists. Choose a different name")
	default:
		sendError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func invalidPagination(field string) error {
	return models.NewValidationError(
		"Invalid pagination. 'page' and 'per_page' must be positive integers", field)
}

// decodeBody parses a JSON request body into dst, rejecting anything that is
// not an object of the expected shape.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("Invalid JSON data")
	}
	return nil
}
