package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/St1cky1/task-tracker/internal/api/handlers"
	"github.com/St1cky1/task-tracker/internal/api/middleware"
)

func NewRouter(taskHandler *handlers.TaskHandler, healthHandler *handlers.HealthHandler, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", healthHandler.Health)

	taskRoutes := func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/filter", taskHandler.FilterTasks)
		r.Get("/sorted", taskHandler.SortedTasks)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTask)
			r.Put("/", taskHandler.UpdateTask)
			r.Delete("/", taskHandler.DeleteTask)
		})
	}

	r.Route("/api/v1/tasks", taskRoutes)
	r.Route("/tasks", taskRoutes)

	return r
}
