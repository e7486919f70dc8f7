package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lelo88/perfume-intel-api/internal/config"
	"github.com/Lelo88/perfume-intel-api/internal/db"
	"github.com/Lelo88/perfume-intel-api/internal/docs"
	"github.com/Lelo88/perfume-intel-api/internal/health"
	"github.com/Lelo88/perfume-intel-api/internal/httpx"
	"github.com/Lelo88/perfume-intel-api/internal/perfumes"
	"github.com/Lelo88/perfume-intel-api/internal/trends"
)

// dataSource es lo que el router necesita del pool: queries y ping.
// *pgxpool.Pool lo satisface; los tests usan un fake.
type dataSource interface {
	db.Querier
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Contexto raíz del proceso.
	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	router := newRouter(pool)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}

// newRouter arma el router completo: middlewares, recursos y docs.
// Recibe el data source ya construido para que los tests inyecten fakes.
func newRouter(database dataSource) chi.Router {
	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// El timeout acota cada viaje a la base: un request colgado falla, no espera infinito.
	r.Use(middleware.Timeout(10 * time.Second))

	// API de solo lectura: GET abierto desde cualquier origen.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(database)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	docs.RegisterRoutes(r)

	perfumeHandler := perfumes.NewHandler(perfumes.NewService(perfumes.NewRepository(database)))
	trendHandler := trends.NewHandler(trends.NewService(trends.NewRepository(database)))

	r.Route("/api", func(r chi.Router) {
		perfumes.RegisterRoutes(r, perfumeHandler)
		trends.RegisterRoutes(r, trendHandler)
	})

	return r
}
