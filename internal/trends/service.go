package trends

import (
	"context"
	"errors"

	"github.com/Lelo88/perfume-intel-api/internal/apierr"
	"github.com/jackc/pgx/v5"
)

// Service contiene las reglas del recurso de tendencias.
type Service struct {
	repository *Repository
}

// NewService crea un service de tendencias.
func NewService(repository *Repository) *Service {
	return &Service{repository: repository}
}

// List devuelve el snapshot completo de la vista.
// Vista vacía es un resultado válido: lista vacía, no error.
func (service *Service) List(ctx context.Context) ([]map[string]any, error) {
	return service.repository.ListAll(ctx)
}

// Get obtiene las estadísticas de una categoría por etiqueta exacta.
func (service *Service) Get(ctx context.Context, category string) (map[string]any, error) {
	stats, err := service.repository.GetByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFoundf("trend category %q", category)
		}
		return nil, err
	}
	return stats, nil
}
