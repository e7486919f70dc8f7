// Package apierr define la taxonomía de errores compartida por todos los recursos.
// Los handlers nunca mapean status codes a mano: la traducción vive en un solo lugar
// (httpx.FailFromError), así los dos recursos no pueden divergir.
package apierr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: la búsqueda exacta no devolvió filas.
	ErrNotFound = errors.New("not found")
	// ErrValidation: parámetros de entrada fuera de contrato. Se detecta
	// antes de tocar la base de datos.
	ErrValidation = errors.New("invalid input")
)

// NotFoundf construye un error de recurso ausente con contexto.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf construye un error de validación con contexto.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
