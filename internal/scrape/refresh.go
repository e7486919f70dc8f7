package scrape

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer es lo mínimo que el refresco necesita del pool.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Refresh actualiza rating y votos del perfume scrapeado.
// Si la página no trajo rating parseable no toca la base: mejor dato viejo
// que dato basura.
func Refresh(ctx context.Context, database Execer, result Result) error {
	if result.CurrentRating == MissingRating {
		return fmt.Errorf("page had no rating for %q, database left untouched", result.Name)
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(result.CurrentRating), 64)
	if err != nil {
		return fmt.Errorf("rating %q is not a number: %w", result.CurrentRating, err)
	}

	// Los votos suelen venir con separador de miles ("12,873").
	votes, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(result.TotalVotes), ",", ""))
	if err != nil {
		return fmt.Errorf("votes %q is not a number: %w", result.TotalVotes, err)
	}

	const query = `UPDATE perfumes SET rating_value = $1, rating_count = $2 WHERE perfume_name = $3`

	tag, err := database.Exec(ctx, query, rating, votes, result.Name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no perfume named %q in the database", result.Name)
	}

	return nil
}
