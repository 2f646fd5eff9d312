package server

import (
	"net/http"

	"nundu/internal/api"
	"nundu/internal/models"
	"nundu/internal/sanitize"
)

// recordHandlers serves the REST routes of one entity collection.
type recordHandlers struct {
	server *Server
	entity models.Entity
}

func (h recordHandlers) list(w http.ResponseWriter, r *http.Request) {
	s := h.server
	schema, err := sanitize.SchemaFor(h.entity.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	query, err := parseListQuery(r, schema)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	records, err := s.service.List(r.Context(), h.entity, query)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (h recordHandlers) create(w http.ResponseWriter, r *http.Request) {
	s := h.server
	var input map[string]any
	if !s.decodeJSONReq(w, r, &input) {
		return
	}

	rec, err := s.service.Create(r.Context(), h.entity, input)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.log().Debug("record created", "entity", h.entity.Name, "id", rec.ID())
	s.writeJSON(w, http.StatusCreated, rec)
}

func (h recordHandlers) get(w http.ResponseWriter, r *http.Request) {
	s := h.server
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	rec, err := s.service.Get(r.Context(), h.entity, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (h recordHandlers) update(w http.ResponseWriter, r *http.Request) {
	s := h.server
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var input map[string]any
	if !s.decodeJSONReq(w, r, &input) {
		return
	}

	rec, err := s.service.Update(r.Context(), h.entity, id, input)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (h recordHandlers) delete(w http.ResponseWriter, r *http.Request) {
	s := h.server
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := s.service.Delete(r.Context(), h.entity, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.MessageResponse{Message: h.entity.Label + " deleted successfully"})
}
