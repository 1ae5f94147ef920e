package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todolist-api/internal/api"
	apiMiddleware "github.com/phrazzld/todolist-api/internal/api/middleware"
	"github.com/phrazzld/todolist-api/internal/domain"
	_ "github.com/phrazzld/todolist-api/internal/docs" // registers the swagger document
	"github.com/swaggo/swag"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.Recoverer)
	r.Use(apiMiddleware.CORS(app.config.Server.CORSAllowedOrigins))

	// Set before mounting sub-routers so they inherit the problem responses.
	r.NotFound(apiMiddleware.NotFound)
	r.MethodNotAllowed(apiMiddleware.MethodNotAllowed)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService, app.config.Auth.Realm, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.taskService, app.logger)
	authHandler := api.NewAuthHandler(app.tokenService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/auth/token", authHandler.IssueToken)

		r.Route("/Tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Put("/", taskHandler.UpdateTask)
			r.Get("/{id}", taskHandler.GetTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
			r.Put("/finish/{id}", taskHandler.FinishTask)
		})

		r.Route("/Users", func(r chi.Router) {
			r.Get("/me", userHandler.Me)

			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.RequireRole(domain.RoleAdmin))
				r.Get("/", userHandler.ListUsers)
				r.Post("/", userHandler.CreateUser)
				r.Put("/", userHandler.UpdateUser)
				r.Get("/{id}", userHandler.GetUser)
				r.Get("/{id}/tasks", userHandler.ListUserTasks)
				r.Delete("/{id}", userHandler.DeleteUser)
			})
		})
	})

	r.Get("/swagger/doc.json", app.swaggerDoc)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

func (app *application) swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		app.logger.Error("failed to read swagger document", "error", err)
		http.Error(w, "swagger document unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}
