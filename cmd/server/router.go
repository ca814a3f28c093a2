package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/blog-api/internal/api"
	apiMiddleware "github.com/phrazzld/blog-api/internal/api/middleware"
	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// apiPrefix is the path prefix of the original deployment; every API route is
// served both at the root and under it.
const apiPrefix = "/api/v1"

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(app.tracing.Middleware("blog-api"))
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.RequestMetrics(app.metrics))
	r.Use(middleware.StripSlashes)

	userHandler := api.NewUserHandler(app.userStore, app.jwtService, app.passwordHasher, app.logger)
	blogHandler := api.NewBlogHandler(app.blogStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	routes := func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/signup", userHandler.Signup)
			r.Post("/signin", userHandler.Signin)
		})

		r.Route("/blog", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", blogHandler.Create)
			r.Put("/", blogHandler.Update)
			r.Get("/bulk", blogHandler.List)
			r.Get("/{id}", blogHandler.Get)
		})
	}
	routes(r)
	r.Route(apiPrefix, routes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{
		Registry: app.registry,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})

	return r
}
