package perfumes

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Lelo88/perfume-intel-api/internal/apierr"
	"github.com/Lelo88/perfume-intel-api/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	List(ctx context.Context, page, limit int, brand string) (Page, error)
	Get(ctx context.Context, name string) (map[string]any, error)
}

// Handler HTTP para perfumes.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de perfumes.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// List maneja GET /perfumes con paginación y filtro exacto por marca.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	page, limit, err := parsePagination(request)
	if err != nil {
		httpx.FailFromError(writer, request, err)
		return
	}

	brand := strings.TrimSpace(request.URL.Query().Get("brand"))

	result, err := handler.service.List(request.Context(), page, limit, brand)
	if err != nil {
		httpx.FailFromError(writer, request, err)
		return
	}

	httpx.JSON(writer, http.StatusOK, result)
}

// parsePagination parsea page y limit con los defaults del contrato.
// Valores no numéricos se rechazan acá; los rangos los valida el service.
func parsePagination(request *http.Request) (int, int, error) {
	query := request.URL.Query()

	page := DefaultPage
	limit := DefaultLimit

	if value := strings.TrimSpace(query.Get("page")); value != "" {
		pageNumber, err := strconv.Atoi(value)
		if err != nil {
			return 0, 0, apierr.Validationf("page must be an integer, got %q", value)
		}
		page = pageNumber
	}

	if value := strings.TrimSpace(query.Get("limit")); value != "" {
		limitNumber, err := strconv.Atoi(value)
		if err != nil {
			return 0, 0, apierr.Validationf("limit must be an integer, got %q", value)
		}
		limit = limitNumber
	}

	return page, limit, nil
}

// GetByName maneja GET /perfumes/{name}.
// El nombre viene del path: se des-escapa antes de usarlo como filtro exacto.
func (handler *Handler) GetByName(writer http.ResponseWriter, request *http.Request) {
	name := chi.URLParam(request, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	perfume, err := handler.service.Get(request.Context(), name)
	if err != nil {
		httpx.FailFromError(writer, request, err)
		return
	}

	httpx.JSON(writer, http.StatusOK, perfume)
}
