package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
)

type positionRepo struct{ s *Store }

func (r positionRepo) Create(ctx context.Context, p *models.RosterPosition) error {
	_, err := r.s.q().ExecContext(ctx,
		`INSERT INTO roster_positions (id, auction_id, name, slots_per_team, is_flex, display_order)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.AuctionID, p.Name, p.SlotsPerTeam, p.IsFlex, p.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("inserting roster position: %w", err)
	}
	return nil
}

func (r positionRepo) Get(ctx context.Context, id uuid.UUID) (*models.RosterPosition, error) {
	var p models.RosterPosition
	err := r.s.q().GetContext(ctx, &p, `SELECT * FROM roster_positions WHERE id = $1`, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r positionRepo) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.RosterPosition, error) {
	var positions []models.RosterPosition
	err := r.s.q().SelectContext(ctx, &positions,
		`SELECT * FROM roster_positions WHERE auction_id = $1 ORDER BY display_order ASC`,
		auctionID)
	if err != nil {
		return nil, fmt.Errorf("listing roster positions: %w", err)
	}
	return positions, nil
}

type pickRepo struct{ s *Store }

func (r pickRepo) Create(ctx context.Context, p *models.DraftPick) error {
	_, err := r.s.q().ExecContext(ctx,
		`INSERT INTO draft_picks (id, auction_id, team_id, school_id, roster_position_id,
			winning_bid, nominator_user_id, winner_user_id, pick_order, assignment_confirmed, won_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.AuctionID, p.TeamID, p.SchoolID, p.RosterPositionID,
		p.WinningBid, p.NominatorUserID, p.WinnerUserID, p.PickOrder, p.AssignmentConfirmed, p.WonAt,
	)
	if err != nil {
		return fmt.Errorf("inserting draft pick: %w", err)
	}
	return nil
}

func (r pickRepo) Get(ctx context.Context, id uuid.UUID) (*models.DraftPick, error) {
	var p models.DraftPick
	err := r.s.q().GetContext(ctx, &p, `SELECT * FROM draft_picks WHERE id = $1`, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r pickRepo) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.DraftPick, error) {
	var picks []models.DraftPick
	err := r.s.q().SelectContext(ctx, &picks,
		`SELECT * FROM draft_picks WHERE auction_id = $1 ORDER BY pick_order ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("listing draft picks: %w", err)
	}
	return picks, nil
}

func (r pickRepo) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.DraftPick, error) {
	var picks []models.DraftPick
	err := r.s.q().SelectContext(ctx, &picks,
		`SELECT * FROM draft_picks WHERE team_id = $1 ORDER BY pick_order ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing team picks: %w", err)
	}
	return picks, nil
}

func (r pickRepo) Update(ctx context.Context, p *models.DraftPick) error {
	return requireRow(r.s.q().ExecContext(ctx,
		`UPDATE draft_picks SET roster_position_id = $2, assignment_confirmed = $3
		 WHERE id = $1`,
		p.ID, p.RosterPositionID, p.AssignmentConfirmed,
	))
}

func (r pickRepo) NextPickOrder(ctx context.Context, auctionID uuid.UUID) (int, error) {
	var next int
	err := r.s.q().GetContext(ctx, &next,
		`SELECT COALESCE(MAX(pick_order), 0) + 1 FROM draft_picks WHERE auction_id = $1`,
		auctionID)
	if err != nil {
		return 0, fmt.Errorf("computing next pick order: %w", err)
	}
	return next, nil
}

func (r pickRepo) CountAssigned(ctx context.Context, auctionID uuid.UUID) (int, error) {
	var n int
	err := r.s.q().GetContext(ctx, &n,
		`SELECT COUNT(*) FROM draft_picks
		 WHERE auction_id = $1 AND assignment_confirmed AND roster_position_id IS NOT NULL`,
		auctionID)
	if err != nil {
		return 0, fmt.Errorf("counting assignments: %w", err)
	}
	return n, nil
}

func (r pickRepo) CountByTeamAndPosition(ctx context.Context, teamID, positionID, excludePickID uuid.UUID) (int, error) {
	var n int
	err := r.s.q().GetContext(ctx, &n,
		`SELECT COUNT(*) FROM draft_picks
		 WHERE team_id = $1 AND roster_position_id = $2 AND id <> $3`,
		teamID, positionID, excludePickID)
	if err != nil {
		return 0, fmt.Errorf("counting held slots: %w", err)
	}
	return n, nil
}

type schoolRepo struct{ s *Store }

func (r schoolRepo) Create(ctx context.Context, s *models.School) error {
	_, err := r.s.q().ExecContext(ctx,
		`INSERT INTO schools (id, auction_id, name, "position") VALUES ($1, $2, $3, $4)`,
		s.ID, s.AuctionID, s.Name, s.Position,
	)
	if err != nil {
		return fmt.Errorf("inserting school: %w", err)
	}
	return nil
}

func (r schoolRepo) Get(ctx context.Context, id uuid.UUID) (*models.School, error) {
	var s models.School
	err := r.s.q().GetContext(ctx, &s, `SELECT * FROM schools WHERE id = $1`, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r schoolRepo) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.School, error) {
	var schools []models.School
	err := r.s.q().SelectContext(ctx, &schools,
		`SELECT * FROM schools WHERE auction_id = $1 ORDER BY name ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("listing schools: %w", err)
	}
	return schools, nil
}
