package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tardis/internal/common"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// details overrides the default detail text for a sentinel error.
type details map[error]string

// writeError maps a service error to a status code and detail. This is the
// only place sentinels become HTTP statuses.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error, overrides details) {
	status, detail := http.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, common.ErrorValidation):
		status, detail = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, common.ErrorNotFound):
		status, detail = http.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		status, detail = http.StatusBadRequest, "Already exists"
	case errors.Is(err, common.ErrorForbidden):
		status, detail = http.StatusForbidden, "Forbidden"
	case errors.Is(err, common.ErrRefreshTokenExpired):
		status, detail = http.StatusUnauthorized, "Refresh token expired"
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		status, detail = http.StatusUnauthorized, "Invalid authentication credentials"
	}

	for sentinel, text := range overrides {
		if errors.Is(err, sentinel) {
			detail = text
			break
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "error", err, "request_id", requestIDFrom(r.Context()))
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", common.BearerScheme)
	}
	writeDetail(w, status, detail)
}

// decodeJSON reads the request body into v. Any decode failure is a
// validation error.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return validationError("malformed JSON body")
	}
	return nil
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}
