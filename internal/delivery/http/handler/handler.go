package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"telesalud-admin/internal/delivery/http/middleware"
	"telesalud-admin/internal/domain/repository"
	"telesalud-admin/internal/usecase"
	"telesalud-admin/pkg/response"
	"telesalud-admin/pkg/validator"

	"github.com/gorilla/mux"
)

// normalizer is implemented by request DTOs that clean their fields
// before validation.
type normalizer interface {
	Normalize()
}

// decodeAndValidate reads a JSON body into req, normalizes it and runs the
// struct tags. It writes the 400 itself and reports whether the handler may
// continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func sessionID(r *http.Request) string {
	sid, _ := middleware.GetSessionIDFromContext(r.Context())
	return sid
}

// writeError maps usecase and remote errors to responses. Store messages
// are passed through so the client can show them as they are.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var (
		queryErr  *repository.RemoteQueryError
		writeErr  *repository.RemoteWriteError
		lookupErr *repository.ExternalLookupError
		authErr   *repository.AuthError
	)

	switch {
	case errors.Is(err, usecase.ErrInvalidFilter),
		errors.Is(err, usecase.ErrInvalidDateFormat),
		errors.Is(err, usecase.ErrMissingID):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, usecase.ErrNoSession):
		response.Unauthorized(w, "Session cookie is required")
	case errors.As(err, &queryErr):
		response.BadGateway(w, "Error: "+queryErr.Message, map[string]string{"code": queryErr.Code})
	case errors.As(err, &writeErr):
		response.BadGateway(w, writeErr.Message, map[string]string{"code": writeErr.Code})
	case errors.As(err, &lookupErr):
		response.BadGateway(w, lookupErr.Message, map[string]int{"status": lookupErr.StatusCode})
	case errors.As(err, &authErr):
		response.Unauthorized(w, authErr.Message)
	default:
		response.InternalServerError(w, fallback)
	}
}
