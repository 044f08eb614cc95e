package service

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
)

func (s *Service) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string     `json:"name"`
		CreatorID *uuid.UUID `json:"creator_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	auc, err := s.auctions.CreateAuction(r.Context(), req.Name, req.CreatorID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// The recovery code is shown once, to the creator; it is excluded from
	// every other auction response.
	s.writeJSON(w, http.StatusCreated, struct {
		*models.Auction
		RecoveryCode string `json:"recovery_code"`
	}{auc, auc.RecoveryCode})
}

func (s *Service) handleRecoverAuction(w http.ResponseWriter, r *http.Request) {
	auc, err := s.auctions.RecoverByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, auc)
}

func (s *Service) handleGetAuction(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	auc, err := s.auctions.GetAuction(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, auc)
}

func (s *Service) handleGetByJoinCode(w http.ResponseWriter, r *http.Request) {
	auc, err := s.auctions.GetByJoinCode(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, auc)
}

func (s *Service) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status models.AuctionStatus `json:"status"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	auc, err := s.auctions.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, auc)
}

func (s *Service) handleJoinAuction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JoinCode    string `json:"join_code"`
		DisplayName string `json:"display_name"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	user, auc, err := s.auctions.JoinAuction(r.Context(), req.JoinCode, req.DisplayName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, struct {
		User    *models.User    `json:"user"`
		Auction *models.Auction `json:"auction"`
	}{user, auc})
}

func (s *Service) handleSetReady(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		UserID  uuid.UUID `json:"user_id"`
		IsReady bool      `json:"is_ready"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.auctions.SetReady(r.Context(), id, req.UserID, req.IsReady); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Service) handleListUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	users, err := s.auctions.ListUsers(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, users)
}

func (s *Service) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		UserID uuid.UUID `json:"user_id"`
		Name   string    `json:"name"`
		Budget int       `json:"budget"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	team, err := s.auctions.CreateTeam(r.Context(), id, req.UserID, req.Name, req.Budget)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, team)
}

func (s *Service) handleListTeams(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	teams, err := s.auctions.ListTeams(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, teams)
}

func (s *Service) handleLinkProxyCoach(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		UserID uuid.UUID `json:"user_id"`
		TeamID uuid.UUID `json:"team_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.auctions.LinkProxyCoach(r.Context(), id, req.UserID, req.TeamID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Service) handleAddSchool(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name"`
		Position string `json:"position"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	school, err := s.auctions.AddSchool(r.Context(), id, req.Name, req.Position)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, school)
}

func (s *Service) handleListSchools(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	schools, err := s.auctions.ListSchools(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, schools)
}

func (s *Service) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	userID := r.URL.Query().Get("user_id")
	if err := s.gateway.UpgradeConnection(w, r, userID, id); err != nil {
		s.logger.Error().Err(err).Msg("websocket upgrade failed")
	}
}
