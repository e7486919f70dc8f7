package perfumes

import (
	"context"
	"fmt"
	"math"

	"github.com/Lelo88/perfume-intel-api/internal/db"
	"github.com/jackc/pgx/v5"
)

// Repository accede a la tabla perfumes.
// Contiene SQL y mapeo DB → modelo.
type Repository struct {
	database db.Querier
}

// NewRepository crea un repositorio de perfumes.
func NewRepository(database db.Querier) *Repository {
	return &Repository{database: database}
}

// List devuelve una página del listado, opcionalmente filtrada por marca exacta.
// El filtro y la paginación van SIEMPRE como parámetros bindeados, nunca concatenados.
// El ORDER BY fija un orden determinístico para que la paginación sea estable.
func (repository *Repository) List(ctx context.Context, brand string, limit, offset int) ([]Summary, error) {
	query := `SELECT brand, perfume_name, rating_value FROM perfumes`
	args := []any{}

	if brand != "" {
		query += ` WHERE brand = $1`
		args = append(args, brand)
	}

	query += fmt.Sprintf(` ORDER BY perfume_name, brand LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.database.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(&summary.Brand, &summary.PerfumeName, &summary.RatingValue); err != nil {
			return nil, err
		}
		// NaN no es JSON válido: se normaliza a null.
		if summary.RatingValue != nil && math.IsNaN(*summary.RatingValue) {
			summary.RatingValue = nil
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// GetByName devuelve la primera fila cuyo perfume_name coincide exactamente,
// con todas sus columnas tal cual están en la tabla (ya saneadas de NaN).
// Devuelve pgx.ErrNoRows si no hay coincidencia; el service lo traduce a dominio.
func (repository *Repository) GetByName(ctx context.Context, name string) (map[string]any, error) {
	const query = `SELECT * FROM perfumes WHERE perfume_name = $1 LIMIT 1`

	rows, err := repository.database.Query(ctx, query, name)
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
