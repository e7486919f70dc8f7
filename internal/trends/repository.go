package trends

import (
	"context"

	"github.com/Lelo88/perfume-intel-api/internal/db"
	"github.com/jackc/pgx/v5"
)

// Repository accede a la vista agregada de tendencias de mercado.
// La vista la materializa un batch externo; acá solo se lee el snapshot actual.
type Repository struct {
	database db.Querier
}

// NewRepository crea un repositorio de tendencias.
func NewRepository(database db.Querier) *Repository {
	return &Repository{database: database}
}

// ListAll devuelve todas las filas de la vista como mapas columna → valor.
// Las columnas agregadas no se modelan una por una: el batch puede sumar
// columnas nuevas y deben pasar tal cual (saneadas de NaN).
func (repository *Repository) ListAll(ctx context.Context) ([]map[string]any, error) {
	const query = `SELECT * FROM v_perfume_market_trends`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return db.CollectMaps(rows)
}

// GetByCategory devuelve la fila cuya categoría coincide exactamente.
// Devuelve pgx.ErrNoRows si no hay coincidencia; el service lo traduce a dominio.
func (repository *Repository) GetByCategory(ctx context.Context, category string) (map[string]any, error) {
	const query = `SELECT * FROM v_perfume_market_trends WHERE trend_category = $1 LIMIT 1`

	rows, err := repository.database.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}

	results, err := db.CollectMaps(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, pgx.ErrNoRows
	}

	return results[0], nil
}
