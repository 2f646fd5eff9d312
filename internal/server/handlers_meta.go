package server

import (
	"net/http"

	"nundu/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.Counts(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	s.writeJSON(w, http.StatusOK, api.InfoResponse{
		Storage:  s.storage,
		Location: s.store.Location(),
		Counts:   counts,
		Total:    total,
	})
}
