package remote

import "errors"

// Taxonomía de errores del API remoto. Cada operación mapea el status
// HTTP a exactamente uno de estos; el caller decide qué hacer con él
// (el store solo los convierte en mensaje de usuario, nunca los re-lanza).
var (
	ErrNetwork         = errors.New("network error")
	ErrInvalidResponse = errors.New("invalid response")
	ErrDecoding        = errors.New("decoding error")
	ErrNotFound        = errors.New("not found")
	ErrServer          = errors.New("server error")
	ErrInvalidRequest  = errors.New("invalid request")
)

// UserMessage traduce un error del cliente al mensaje visible en UI.
// Catálogo fijo por tipo de error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetwork):
		return "Error de conexión. Verifica tu conexión a internet."
	case errors.Is(err, ErrServer):
		return "Error del servidor. Intenta más tarde."
	case errors.Is(err, ErrDecoding):
		return "Error al procesar los datos."
	case errors.Is(err, ErrNotFound):
		return "Recurso no encontrado."
	case errors.Is(err, ErrInvalidRequest):
		return "Solicitud inválida."
	default:
		return "Respuesta inválida del servidor."
	}
}
