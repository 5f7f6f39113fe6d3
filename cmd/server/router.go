package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/calebwray/flock-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	memberHandler, offeringHandler, healthHandler := app.handlers()

	r.Get("/health", healthHandler.Health)

	r.Route("/members", func(r chi.Router) {
		r.Get("/", memberHandler.ListMembers)
		r.Post("/", memberHandler.CreateMember)
		r.Get("/search", memberHandler.SearchMembers)
		r.Get("/by-name/{name}", memberHandler.GetMemberIDByName)
		r.Delete("/{id}", memberHandler.DeleteMember)
		r.Get("/{id}/offerings", offeringHandler.GetMemberOfferings)
	})

	r.Post("/offerings", offeringHandler.CreateOffering)

	return r
}
