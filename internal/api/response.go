package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/qween-code/barter-qween/internal/types"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, ErrorResponse{Error: message})
}

// decodeJSON decodes a JSON request body into target, rejecting unknown fields.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

// writeDomainError maps a store error to its HTTP status. Errors outside the
// taxonomy are logged and reported as 500 with internalMsg.
func writeDomainError(w http.ResponseWriter, logger *zap.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrInvalidTransition):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrUnauthenticated):
		jsonError(w, http.StatusUnauthorized, "unauthenticated")
	default:
		logger.Error(internalMsg, zap.Error(err))
		jsonError(w, http.StatusInternalServerError, internalMsg)
	}
}
