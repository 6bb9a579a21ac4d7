package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/corebank/finance-service/internal/apperr"
	"github.com/sirupsen/logrus"
)

// validationResponse is the wire shape of 422 responses.
type validationResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps the error taxonomy onto HTTP status codes:
// Unauthenticated 401, Forbidden 403, NotFound 404, Validation 422,
// anything else 500.
func respondError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindUnauthenticated:
		respondJSON(w, http.StatusUnauthorized, messageResponse{Message: err.Error()})
	case apperr.KindForbidden:
		respondJSON(w, http.StatusForbidden, messageResponse{Message: err.Error()})
	case apperr.KindNotFound:
		respondJSON(w, http.StatusNotFound, messageResponse{Message: err.Error()})
	case apperr.KindValidation:
		respondJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Message: err.Error(),
			Errors:  apperr.FieldsOf(err),
		})
	default:
		logger.WithError(err).Error("Request failed")
		respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
	}
}

// decodeBody decodes a JSON body into dst. A type mismatch on a known field
// is returned as a field-scoped message so callers can defer it behind
// ownership checks; a body that is not JSON at all is an error.
func decodeBody(r *http.Request, dst any) (map[string][]string, error) {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil, nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string][]string{
			typeErr.Field: {fmt.Sprintf("the %s field is invalid", typeErr.Field)},
		}, nil
	}
	return nil, err
}

func badRequest(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
}
