package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kailas-cloud/frontsearch/internal/domain"
)

type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeValidationFailed   errorCode = "validation_failed"
	codeUnauthorized       errorCode = "unauthorized"
	codeNotFound           errorCode = "not_found"
	codeRateLimited        errorCode = "rate_limited"
	codeFacetsNotSupported errorCode = "facets_not_supported"
	codeBackendUnavailable errorCode = "backend_unavailable"
	codeInternal           errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		validationHandler(domain.ErrInvalidItem),
		validationHandler(domain.ErrInvalidQuery),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrFacetsNotSupported, http.StatusNotImplemented, codeFacetsNotSupported),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusBadGateway, codeBackendUnavailable),
	}
}

// sentinelHandler answers with the sentinel's own message so internals never leak.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// validationHandler exposes the full message: it describes the client's input.
func validationHandler(sentinel error) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			msg = fe.Error()
		} else if sentinel == domain.ErrInvalidQuery {
			msg = err.Error()
		}
		writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
