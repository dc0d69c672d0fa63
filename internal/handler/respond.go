// Package handler holds the response plumbing shared by the storefront and
// API handler packages.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/middleware"
)

// StatusCode maps a domain error code to an HTTP status.
func StatusCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Default().Error("failed to encode response", slog.String("error", err.Error()))
		}
	}
}

// RespondError writes a domain error as JSON. Validation errors carry their
// field map; internal errors are logged and hidden behind a generic message.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	if code == domain.EINTERNAL {
		middleware.GetLogger(r.Context()).Error("request failed", slog.String("error", err.Error()))
	}

	body := map[string]interface{}{"error": domain.ErrorMessage(err)}
	if fields := domain.GetValidationFields(err); fields != nil {
		body["fields"] = fields
	}
	RespondJSON(w, StatusCode(code), body)
}

// DecodeJSON reads a JSON request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Invalid("decode", "Invalid JSON body")
	}
	return nil
}
