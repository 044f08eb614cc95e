package service

import (
	"net/http"

	"github.com/google/uuid"
)

func (s *Service) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		UserID   uuid.UUID `json:"user_id"`
		SchoolID uuid.UUID `json:"school_id"`
		Amount   int       `json:"amount"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.bidding.PlaceBid(r.Context(), id, req.UserID, req.SchoolID, req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Service) handleBidHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	bids, err := s.bidding.BidHistory(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bids)
}

func (s *Service) handleSettleBidding(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	result, err := s.bidding.SettleBidding(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Service) handleAppendNomination(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		UserID uuid.UUID `json:"user_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	entry, err := s.nominations.Append(r.Context(), id, req.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, entry)
}

func (s *Service) handleListNominations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	entries, err := s.nominations.List(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Service) handleSkipNomination(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		UserID  uuid.UUID `json:"user_id"`
		Skipped bool      `json:"skipped"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.nominations.SetSkipped(r.Context(), id, req.UserID, req.Skipped); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Service) handleAdvanceTurn(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	next, err := s.nominations.AdvanceTurn(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		CurrentNominatorUserID *uuid.UUID `json:"current_nominator_user_id"`
	}{next})
}

func (s *Service) handlePracticeState(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	state, err := s.bidding.PracticeState(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Service) handlePlacePracticeBid(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		UserID uuid.UUID `json:"user_id"`
		Amount int       `json:"amount"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	bid, err := s.bidding.PlacePracticeBid(r.Context(), id, req.UserID, req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bid)
}

func (s *Service) handlePassPractice(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	var req struct {
		UserID uuid.UUID `json:"user_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.bidding.PassPractice(r.Context(), id, req.UserID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Service) handleCompletePracticeRound(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	next, err := s.bidding.CompletePracticeRound(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		NextSchoolName string `json:"next_school_name"`
	}{next})
}

func (s *Service) handleResetPracticeBids(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	if err := s.bidding.ResetPracticeBids(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
