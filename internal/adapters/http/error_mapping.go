package httpadapter

import (
	"net/http"

	"contract-rag/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput),
		domain.IsKind(err, domain.ErrUnsupportedFormat),
		domain.IsKind(err, domain.ErrInvalidTopK):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrStoreNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
