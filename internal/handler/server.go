// Package handler implements the HTTP handlers for the Tripfolio API.
// All handlers are methods on Server. Methods are split into files by concern
// (health.go, destination.go) but share the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripfolio/internal/assistant"
	"github.com/pkordes/tripfolio/internal/domain"
)

// ItineraryServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the service layer or the file store.
type ItineraryServicer interface {
	Add(d domain.Destination)
	Remove(city string) bool
	Update(city string, u domain.Update) (bool, error)
	Search(term string) []domain.Destination
	List() []domain.Destination
	Save() error
}

// Generator is the assistant dependency: text out, never an error.
type Generator interface {
	Generate(ctx context.Context, d domain.Destination, mode assistant.Mode) string
}

// Server holds the dependencies shared by all API endpoints.
type Server struct {
	itinerary ItineraryServicer
	assistant Generator
	openapi   []byte
}

// NewServer constructs the Server with all its dependencies.
// openapi may be nil; the /openapi.yaml route is registered regardless and
// serves whatever document is provided.
func NewServer(itinerary ItineraryServicer, gen Generator, openapi []byte) *Server {
	return &Server{itinerary: itinerary, assistant: gen, openapi: openapi}
}

// Routes returns the route table for the API. Middleware is wired by the
// caller (cmd/api), keeping tests free to mount the bare routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Post("/", s.CreateDestination)
		r.Delete("/{city}", s.DeleteDestination)
		r.Patch("/{city}", s.UpdateDestination)
		r.Get("/{city}/suggestions", s.GetSuggestions)
	})

	return r
}

// GetOpenAPI serves the embedded OpenAPI document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(s.openapi)
}
