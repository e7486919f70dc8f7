package trends

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Lelo88/perfume-intel-api/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	List(ctx context.Context) ([]map[string]any, error)
	Get(ctx context.Context, category string) (map[string]any, error)
}

// Handler HTTP para tendencias.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de tendencias.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// List maneja GET /trends: el snapshot agregado completo.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.List(request.Context())
	if err != nil {
		httpx.FailFromError(writer, request, err)
		return
	}

	httpx.JSON(writer, http.StatusOK, stats)
}

// GetByCategory maneja GET /trends/{category}.
// La etiqueta viene del path (ej: "oud%20perfume"): se des-escapa antes de filtrar.
func (handler *Handler) GetByCategory(writer http.ResponseWriter, request *http.Request) {
	category := chi.URLParam(request, "category")
	if decoded, err := url.PathUnescape(category); err == nil {
		category = decoded
	}

	stats, err := handler.service.Get(request.Context(), category)
	if err != nil {
		httpx.FailFromError(writer, request, err)
		return
	}

	httpx.JSON(writer, http.StatusOK, stats)
}
