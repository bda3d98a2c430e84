// messages.go
package apperr

import "errors"

// Mensajes para el usuario final, separados de la lógica de mapeo para
// poder traducirlos sin tocar el código de estados.
var userMessages = map[error]string{
	ErrInvalidPayload: "Los datos enviados no son válidos. Revise el formulario e intente de nuevo.",
	ErrSessionExpired: "Su sesión expiró. Inicie sesión nuevamente.",
	ErrForbidden:      "No tiene permisos para realizar esta acción.",
	ErrNotFound:       "No encontramos el recurso solicitado.",
	ErrConflict:       "La operación entra en conflicto con el estado actual.",
	ErrServer:         "Ocurrió un error en el servidor. Intente más tarde.",
	ErrUnreachable:    "No pudimos conectar con el servidor. Verifique su conexión.",
}

const genericMessage = "Ocurrió un error inesperado. Intente más tarde."

// Message devuelve el texto localizado para el usuario. Nunca expone el
// detalle técnico del error.
func Message(err error) string {
	for sentinel, msg := range userMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return genericMessage
}
