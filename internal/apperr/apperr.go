package apperr

import (
	"errors"
	"net/http"
)

// Errores de negocio exportados (los usan controller, service y client).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidPayload = errors.New("datos inválidos")
	ErrConflict       = errors.New("conflicto de estado")
	ErrSessionExpired = errors.New("sesión expirada")
	ErrServer         = errors.New("error interno del servidor")
	ErrUnreachable    = errors.New("no hubo respuesta del servidor")
)

// FromStatusCode traduce un código HTTP del colaborador externo a un
// error de la taxonomía. Códigos no contemplados caen en ErrServer.
func FromStatusCode(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrInvalidPayload
	case http.StatusUnauthorized:
		return ErrSessionExpired
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrServer
	}
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrInvalidPayload):
		return http.StatusBadRequest

	case errors.Is(err, ErrSessionExpired):
		return http.StatusUnauthorized

	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrConflict):
		return http.StatusConflict

	case errors.Is(err, ErrUnreachable):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
