package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/martinsuchenak/assetcompass/internal/log"
	"github.com/martinsuchenak/assetcompass/internal/storage"
	"github.com/martinsuchenak/assetcompass/internal/validation"
)

// Error kinds carried in every error body.
const (
	KindValidation = "validation_error"
	KindNotFound   = "not_found"
	KindConflict   = "conflict"
	KindReference  = "reference_error"
	KindInternal   = "internal"
)

// APIError is the JSON body of every non-2xx response.
type APIError struct {
	Code    int               `json:"code"`
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NotFoundError(entity string) *APIError {
	return &APIError{Code: http.StatusNotFound, Kind: KindNotFound, Message: entity + " not found"}
}

func ValidationError(message string, fields map[string]string) *APIError {
	return &APIError{Code: http.StatusBadRequest, Kind: KindValidation, Message: message, Fields: fields}
}

func InternalError() *APIError {
	return &APIError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal Server Error"}
}

// toAPIError maps validation and storage errors onto the error taxonomy.
// entity names the resource for not-found messages. Anything unrecognised
// becomes a generic internal error.
func toAPIError(err error, entity string) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return ValidationError(verr.Message, verr.Fields)
	}

	var ce *storage.ConstraintError
	hasField := errors.As(err, &ce) && ce.Field != ""

	fields := func() map[string]string {
		if !hasField {
			return nil
		}
		return map[string]string{ce.Field: ce.Message}
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return NotFoundError(entity)
	case errors.Is(err, storage.ErrConflict):
		return &APIError{Code: http.StatusConflict, Kind: KindConflict, Message: err.Error(), Fields: fields()}
	case errors.Is(err, storage.ErrReference):
		return &APIError{Code: http.StatusUnprocessableEntity, Kind: KindReference, Message: err.Error(), Fields: fields()}
	case errors.Is(err, storage.ErrInvalidValue):
		return ValidationError(err.Error(), fields())
	}

	return InternalError()
}

// writeFailure logs err at a level matching its kind and writes the body.
func writeFailure(w http.ResponseWriter, err error, entity, op string, keyvals ...any) {
	apiErr := toAPIError(err, entity)
	keyvals = append(keyvals, "error", err, "kind", apiErr.Kind)

	if apiErr.Kind == KindInternal {
		log.Error("Failed to "+op+" "+entity, keyvals...)
	} else {
		log.Warn("Rejected "+op+" "+entity, keyvals...)
	}

	writeJSON(w, apiErr.Code, apiErr)
}
