package perfumes

import (
	"context"
	"errors"
	"strings"

	"github.com/Lelo88/perfume-intel-api/internal/apierr"
	"github.com/jackc/pgx/v5"
)

// Límites del contrato de paginación. Fuera de rango se rechaza con 400,
// nunca se recorta en silencio: recortar cambia la aritmética de offset
// a espaldas del cliente.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Service contiene las reglas del recurso perfumes.
type Service struct {
	repository *Repository
}

// NewService crea un service de perfumes.
func NewService(repository *Repository) *Service {
	return &Service{repository: repository}
}

// List valida la paginación, calcula el offset y arma el sobre de respuesta.
// La validación corre antes de tocar la base de datos.
func (service *Service) List(ctx context.Context, page, limit int, brand string) (Page, error) {
	if page < 1 {
		return Page{}, apierr.Validationf("page must be >= 1, got %d", page)
	}
	if limit < 1 || limit > MaxLimit {
		return Page{}, apierr.Validationf("limit must be between 1 and %d, got %d", MaxLimit, limit)
	}

	brand = strings.TrimSpace(brand)
	offset := (page - 1) * limit

	summaries, err := service.repository.List(ctx, brand, limit, offset)
	if err != nil {
		return Page{}, err
	}

	// Pedir una página pasada la última no es un error: devuelve count=0.
	return Page{
		Page:  page,
		Limit: limit,
		Count: len(summaries),
		Data:  summaries,
	}, nil
}

// Get obtiene el detalle completo de un perfume por nombre exacto.
func (service *Service) Get(ctx context.Context, name string) (map[string]any, error) {
	perfume, err := service.repository.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFoundf("perfume %q", name)
		}
		return nil, err
	}
	return perfume, nil
}
