package perfumes

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra rutas de perfumes en el router.
// Mantener esto separado hace que main.go no crezca sin control.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Route("/perfumes", func(route chi.Router) {
		route.Get("/", handler.List)
		route.Get("/{name}", handler.GetByName)
	})
}
