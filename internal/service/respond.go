package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/auction"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/bidding"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/roster"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps engine sentinels to HTTP statuses. Domain rule violations
// are 422s: the request was well-formed but the auction's state forbids it.
func (s *Service) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrConflict),
		errors.Is(err, auction.ErrInvalidTransition),
		errors.Is(err, auction.ErrNameTaken):
		status = http.StatusConflict
	case errors.Is(err, bidding.ErrBidTooLow),
		errors.Is(err, bidding.ErrInsufficientFunds),
		errors.Is(err, bidding.ErrNoActiveBidding),
		errors.Is(err, bidding.ErrSchoolMismatch),
		errors.Is(err, bidding.ErrTeamRequired),
		errors.Is(err, bidding.ErrAlreadyPassed),
		errors.Is(err, roster.ErrPositionMismatch),
		errors.Is(err, roster.ErrSlotsFull),
		errors.Is(err, roster.ErrNoEligiblePosition):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, errorBody{Error: err.Error()})
}

func (s *Service) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func (s *Service) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.badRequest(w, "invalid request body")
		return false
	}
	return true
}

// pathUUID parses the {id} path segment, writing a 400 on failure.
func (s *Service) pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.badRequest(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
