package server

import (
	"net/http"

	"nundu/internal/models"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /info", s.handleInfo)

	// One collection per entity. PUT and PATCH both apply partial updates.
	for _, entity := range models.Entities() {
		h := recordHandlers{server: s, entity: entity}
		collection := "/" + entity.Name
		item := collection + "/{id}"

		mux.HandleFunc("GET "+collection, h.list)
		mux.HandleFunc("POST "+collection, h.create)
		mux.HandleFunc("GET "+item, h.get)
		mux.HandleFunc("PUT "+item, h.update)
		mux.HandleFunc("PATCH "+item, h.update)
		mux.HandleFunc("DELETE "+item, h.delete)
	}

	return mux
}
