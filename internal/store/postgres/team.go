package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
)

type teamRepo struct{ s *Store }

func (r teamRepo) Create(ctx context.Context, t *models.Team) error {
	_, err := r.s.q().ExecContext(ctx,
		`INSERT INTO teams (id, auction_id, owner_user_id, name, budget, remaining_budget, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.AuctionID, t.OwnerUserID, t.Name, t.Budget, t.RemainingBudget, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}
	return nil
}

func (r teamRepo) Get(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var t models.Team
	err := r.s.q().GetContext(ctx, &t, `SELECT * FROM teams WHERE id = $1`, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r teamRepo) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := r.s.q().SelectContext(ctx, &teams,
		`SELECT * FROM teams WHERE auction_id = $1 ORDER BY created_at ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return teams, nil
}

// UpdateRemainingBudget enforces the never-negative invariant in the WHERE
// clause; an overdraft shows up as ErrNotFound and rolls the settlement back.
func (r teamRepo) UpdateRemainingBudget(ctx context.Context, id uuid.UUID, remaining int) error {
	return requireRow(r.s.q().ExecContext(ctx,
		`UPDATE teams SET remaining_budget = $2 WHERE id = $1 AND $2 >= 0`,
		id, remaining,
	))
}
