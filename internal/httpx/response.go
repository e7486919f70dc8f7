package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Lelo88/perfume-intel-api/internal/apierr"
)

// ErrorResponse es el sobre estándar para fallas.
// Las respuestas exitosas NO se envuelven: el contrato de cada endpoint
// define su propio cuerpo (sobre de paginación, objeto, lista).
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
	Meta  *Meta     `json:"meta,omitempty"`
}

// ErrorBody describe un error de forma estructurada.
type ErrorBody struct {
	Code    string `json:"code"`    // ej: "invalid_input", "not_found"
	Message string `json:"message"` // mensaje para humanos
}

// Meta contiene información adicional útil para debugging y trazabilidad.
type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	TimeUTC   string `json:"time_utc,omitempty"`
}

// JSON escribe cualquier payload con headers correctos.
// Nota: en caso de error de encodeo, responde 500 de forma segura.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)

	if err := enc.Encode(payload); err != nil {
		// Último recurso: no se pudo serializar JSON.
		http.Error(w, `{"error":{"code":"internal","message":"internal server error"}}`, http.StatusInternalServerError)
	}
}

// Fail devuelve un error estructurado.
func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	JSON(w, status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
		Meta: &Meta{
			RequestID: RequestIDFrom(r),
			TimeUTC:   time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// FailFromError traduce la taxonomía de errores de dominio a HTTP.
// Es el único punto donde se decide un status code a partir de un error;
// todos los handlers pasan por acá.
func FailFromError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apierr.ErrValidation):
		Fail(w, r, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, apierr.ErrNotFound):
		Fail(w, r, http.StatusNotFound, "not_found", err.Error())
	default:
		// Falla de data source: se expone el mensaje subyacente, nunca un stack trace.
		Fail(w, r, http.StatusInternalServerError, "datasource_error", err.Error())
	}
}
