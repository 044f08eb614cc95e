// Package roster places won schools into roster slots, manually or
// automatically, and detects whole-auction completion.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

// App assigns draft picks to roster positions.
type App struct {
	store       store.Store
	broadcaster events.Broadcaster
	clock       clockwork.Clock
	logger      zerolog.Logger
}

// NewApp creates a roster App.
func NewApp(st store.Store, bc events.Broadcaster, clk clockwork.Clock, logger zerolog.Logger) *App {
	return &App{
		store:       st,
		broadcaster: bc,
		clock:       clk,
		logger:      logger.With().Str("component", "roster").Logger(),
	}
}

// Assignment reports where a pick landed.
type Assignment struct {
	RosterPositionName string `json:"roster_position_name"`
	IsFlex             bool   `json:"is_flex"`
	AuctionComplete    bool   `json:"auction_complete"`
}

// AssignManual places a pick into a chosen position. Non-flex positions
// require the school's position label to match the position name, ignoring
// case, and the team must have a free slot (the pick's current slot does not
// count against itself on reassignment).
func (a *App) AssignManual(ctx context.Context, draftPickID, rosterPositionID uuid.UUID) (*Assignment, error) {
	var (
		out  *Assignment
		pick *models.DraftPick
	)
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		pick, err = tx.DraftPicks().Get(ctx, draftPickID)
		if err != nil {
			return fmt.Errorf("loading draft pick: %w", err)
		}
		pos, err := tx.RosterPositions().Get(ctx, rosterPositionID)
		if err != nil {
			return fmt.Errorf("loading roster position: %w", err)
		}
		school, err := tx.Schools().Get(ctx, pick.SchoolID)
		if err != nil {
			return fmt.Errorf("loading school: %w", err)
		}

		if !pos.IsFlex && !strings.EqualFold(school.Position, pos.Name) {
			return fmt.Errorf("%w: school is %q, position is %q", ErrPositionMismatch, school.Position, pos.Name)
		}
		if err := a.checkCapacity(ctx, tx, pick, pos); err != nil {
			return err
		}

		complete, err := a.confirm(ctx, tx, pick, pos)
		if err != nil {
			return err
		}
		out = &Assignment{RosterPositionName: pos.Name, IsFlex: pos.IsFlex, AuctionComplete: complete}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.broadcastAssignment(ctx, pick, out.RosterPositionName)
	return out, nil
}

// AssignAuto places a pick into the first eligible position with a free slot.
// Non-flex positions are tried first (by display order) so a school matching
// a specific slot is never burned on a flex slot while the specific slot is
// still open; flex positions follow, also by display order.
func (a *App) AssignAuto(ctx context.Context, draftPickID uuid.UUID) (*Assignment, error) {
	var (
		out  *Assignment
		pick *models.DraftPick
	)
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		pick, err = tx.DraftPicks().Get(ctx, draftPickID)
		if err != nil {
			return fmt.Errorf("loading draft pick: %w", err)
		}
		school, err := tx.Schools().Get(ctx, pick.SchoolID)
		if err != nil {
			return fmt.Errorf("loading school: %w", err)
		}
		positions, err := tx.RosterPositions().ListByAuction(ctx, pick.AuctionID)
		if err != nil {
			return fmt.Errorf("listing roster positions: %w", err)
		}

		sort.SliceStable(positions, func(i, j int) bool {
			if positions[i].IsFlex != positions[j].IsFlex {
				return !positions[i].IsFlex
			}
			return positions[i].DisplayOrder < positions[j].DisplayOrder
		})

		for i := range positions {
			pos := &positions[i]
			if !pos.IsFlex && !strings.EqualFold(school.Position, pos.Name) {
				continue
			}
			if err := a.checkCapacity(ctx, tx, pick, pos); err != nil {
				if errors.Is(err, ErrSlotsFull) {
					continue
				}
				return err
			}
			complete, err := a.confirm(ctx, tx, pick, pos)
			if err != nil {
				return err
			}
			out = &Assignment{RosterPositionName: pos.Name, IsFlex: pos.IsFlex, AuctionComplete: complete}
			return nil
		}
		return ErrNoEligiblePosition
	})
	if err != nil {
		return nil, err
	}

	a.broadcastAssignment(ctx, pick, out.RosterPositionName)
	return out, nil
}

// checkCapacity fails with ErrSlotsFull when the pick's team already fills
// every slot of pos, not counting the pick itself.
func (a *App) checkCapacity(ctx context.Context, tx store.Store, pick *models.DraftPick, pos *models.RosterPosition) error {
	held, err := tx.DraftPicks().CountByTeamAndPosition(ctx, pick.TeamID, pos.ID, pick.ID)
	if err != nil {
		return fmt.Errorf("counting held slots: %w", err)
	}
	if held >= pos.SlotsPerTeam {
		return fmt.Errorf("%w: %s holds %d of %d", ErrSlotsFull, pos.Name, held, pos.SlotsPerTeam)
	}
	return nil
}

// confirm writes the assignment and runs the completion check.
func (a *App) confirm(ctx context.Context, tx store.Store, pick *models.DraftPick, pos *models.RosterPosition) (bool, error) {
	id := pos.ID
	pick.RosterPositionID = &id
	pick.AssignmentConfirmed = true
	if err := tx.DraftPicks().Update(ctx, pick); err != nil {
		return false, fmt.Errorf("updating draft pick: %w", err)
	}
	return a.checkCompletion(ctx, tx, pick.AuctionID)
}

// checkCompletion transitions the auction to COMPLETE once every team has
// filled every slot. Idempotent: a complete auction stays complete and the
// check never errors for running it again.
func (a *App) checkCompletion(ctx context.Context, tx store.Store, auctionID uuid.UUID) (bool, error) {
	teams, err := tx.Teams().ListByAuction(ctx, auctionID)
	if err != nil {
		return false, fmt.Errorf("listing teams: %w", err)
	}
	positions, err := tx.RosterPositions().ListByAuction(ctx, auctionID)
	if err != nil {
		return false, fmt.Errorf("listing roster positions: %w", err)
	}

	slotsPerTeam := 0
	for _, p := range positions {
		slotsPerTeam += p.SlotsPerTeam
	}
	required := slotsPerTeam * len(teams)
	if required == 0 {
		return false, nil
	}

	assigned, err := tx.DraftPicks().CountAssigned(ctx, auctionID)
	if err != nil {
		return false, fmt.Errorf("counting assignments: %w", err)
	}
	if assigned < required {
		return false, nil
	}

	auc, err := tx.Auctions().GetForUpdate(ctx, auctionID)
	if err != nil {
		return false, fmt.Errorf("loading auction: %w", err)
	}
	if auc.Status != models.AuctionStatusInProgress {
		return auc.Status == models.AuctionStatusComplete, nil
	}

	now := a.clock.Now().UTC()
	auc.Status = models.AuctionStatusComplete
	auc.CompletedAt = &now
	auc.ModifiedAt = now
	if err := tx.Auctions().Update(ctx, auc); err != nil {
		return false, fmt.Errorf("completing auction: %w", err)
	}

	a.logger.Info().Str("auction_id", auctionID.String()).Msg("all rosters filled, auction complete")
	return true, nil
}

func (a *App) broadcastAssignment(ctx context.Context, pick *models.DraftPick, positionName string) {
	payload := events.RosterAssignmentUpdatedPayload{
		DraftPickID:        pick.ID,
		TeamID:             pick.TeamID,
		RosterPositionName: positionName,
	}
	if team, err := a.store.Teams().Get(ctx, pick.TeamID); err == nil {
		payload.TeamName = team.Name
	}
	if school, err := a.store.Schools().Get(ctx, pick.SchoolID); err == nil {
		payload.SchoolName = school.Name
	}
	if err := a.broadcaster.Broadcast(ctx, pick.AuctionID, events.TypeRosterAssignmentUpdated, payload); err != nil {
		a.logger.Warn().Err(err).Msg("failed to broadcast RosterAssignmentUpdated")
	}
}
