package perfumes

// Summary es la proyección fija del listado: marca, nombre y rating.
// RatingValue es puntero porque la columna admite NULL (y NaN, que se normaliza).
type Summary struct {
	Brand       string   `json:"brand"`
	PerfumeName string   `json:"perfume_name"`
	RatingValue *float64 `json:"rating_value"`
}

// Page es el sobre de paginación del listado.
// Count es la cantidad de filas devueltas en esta página, no el total.
type Page struct {
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}
