package trends

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra rutas de tendencias en el router.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Route("/trends", func(route chi.Router) {
		route.Get("/", handler.List)
		route.Get("/{category}", handler.GetByCategory)
	})
}
