package respond

import (
	"errors"
	"net/http"

	"content-hub/internal/domain/entity"
)

// DomainError maps domain sentinel errors to a status code and writes the response.
// Validation messages are returned as is; other 4xx get a fixed message so storage
// details such as constraint names never reach the client.
func DomainError(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	switch {
	case code == http.StatusNotFound:
		JSON(w, code, ErrorBody{Error: "not found"})
	case errors.Is(err, entity.ErrAlreadyExists):
		JSON(w, code, ErrorBody{Error: "already exists"})
	case errors.Is(err, entity.ErrDeletionFailed):
		JSON(w, code, ErrorBody{Error: "cannot be deleted while referenced"})
	default:
		SafeError(w, code, err)
	}
}

// StatusFor returns the HTTP status for err.
//
//	validation / invalid input   → 400
//	not found                    → 404
//	already exists, delete block → 409
//	storage unavailable          → 503
//	anything else                → 500
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrAlreadyExists), errors.Is(err, entity.ErrDeletionFailed):
		return http.StatusConflict
	case errors.Is(err, entity.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
