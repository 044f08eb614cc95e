package service

import (
	"net/http"

	"github.com/google/uuid"
)

func (s *Service) handleAddPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		Name         string `json:"name"`
		SlotsPerTeam int    `json:"slots_per_team"`
		IsFlex       bool   `json:"is_flex"`
		DisplayOrder int    `json:"display_order"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	pos, err := s.roster.AddPosition(r.Context(), id, req.Name, req.SlotsPerTeam, req.IsFlex, req.DisplayOrder)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, pos)
}

func (s *Service) handleListPositions(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	positions, err := s.roster.ListPositions(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, positions)
}

func (s *Service) handleListPicks(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	picks, err := s.roster.ListPicks(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, picks)
}

func (s *Service) handleAssignManual(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		RosterPositionID uuid.UUID `json:"roster_position_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.roster.AssignManual(r.Context(), id, req.RosterPositionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Service) handleAssignAuto(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	result, err := s.roster.AssignAuto(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
