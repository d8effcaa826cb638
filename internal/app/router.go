package app

import (
	"kanban/internal/handlers"
	"kanban/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func newRouter(taskHandler handlers.TaskHandler, userHandler handlers.UserHandler, limiter middleware.Limiter, origins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(limiter))

	r.Get("/health", taskHandler.HealthCheck)

	r.Get("/", taskHandler.ListTasks)                // GET /
	r.Post("/create", taskHandler.CreateTask)        // POST /create
	r.Put("/update/{id}", taskHandler.UpdateTask)    // PUT /update/{id}
	r.Delete("/delete/{id}", taskHandler.DeleteTask) // DELETE /delete/{id}

	r.Get("/users", userHandler.ListUsers) // GET /users
	r.Route("/user", func(r chi.Router) {
		r.Post("/create", userHandler.CreateUser)        // POST /user/create
		r.Put("/update/{id}", userHandler.UpdateUser)    // PUT /user/update/{id}
		r.Delete("/delete/{id}", userHandler.DeleteUser) // DELETE /user/delete/{id}
	})

	return r
}
