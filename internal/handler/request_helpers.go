package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/amigo-fit/amigo-server/internal/logger"
)

// Request decoding error messages
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Request validation failed"
	ErrMsgMissingQueryParam     = "Missing required query parameter"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body into req and runs
// struct-tag validation. If it returns an error the HTTP response has
// already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// GetQueryParam fetches a required query parameter, writing a 400
// response when it is absent
func GetQueryParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("%s: %s", ErrMsgMissingQueryParam, name))
		return "", false
	}
	return value, true
}
