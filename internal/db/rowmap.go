package db

import (
	"math"

	"github.com/jackc/pgx/v5"
)

// CollectMaps convierte todas las filas en mapas columna → valor usando los
// field descriptions de la query, así las columnas no modeladas pasan tal cual.
// Todo NaN se reescribe a nil: NaN no es JSON válido y nunca debe llegar al cliente.
func CollectMaps(rows pgx.Rows) ([]map[string]any, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()

	results := []map[string]any{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]any, len(fields))
		for i, field := range fields {
			row[field.Name] = Sanitize(values[i])
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// Sanitize normaliza un valor escaneado para serialización JSON.
// Postgres puede devolver NaN en columnas float; el equivalente seguro es null.
func Sanitize(value any) any {
	switch number := value.(type) {
	case float64:
		if math.IsNaN(number) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(number)) {
			return nil
		}
	}
	return value
}
