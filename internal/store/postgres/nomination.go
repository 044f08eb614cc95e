package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
)

type nominationRepo struct{ s *Store }

func (r nominationRepo) Create(ctx context.Context, n *models.NominationOrder) error {
	_, err := r.s.q().ExecContext(ctx,
		`INSERT INTO nomination_order (id, auction_id, user_id, "position", has_nominated, is_skipped)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.AuctionID, n.UserID, n.Position, n.HasNominated, n.IsSkipped,
	)
	if err != nil {
		return fmt.Errorf("inserting nomination entry: %w", err)
	}
	return nil
}

func (r nominationRepo) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.NominationOrder, error) {
	var entries []models.NominationOrder
	err := r.s.q().SelectContext(ctx, &entries,
		`SELECT * FROM nomination_order WHERE auction_id = $1 ORDER BY "position" ASC`,
		auctionID)
	if err != nil {
		return nil, fmt.Errorf("listing nomination order: %w", err)
	}
	return entries, nil
}

func (r nominationRepo) Update(ctx context.Context, n *models.NominationOrder) error {
	return requireRow(r.s.q().ExecContext(ctx,
		`UPDATE nomination_order SET "position" = $2, has_nominated = $3, is_skipped = $4
		 WHERE id = $1`,
		n.ID, n.Position, n.HasNominated, n.IsSkipped,
	))
}

func (r nominationRepo) ResetHasNominated(ctx context.Context, auctionID uuid.UUID) error {
	_, err := r.s.q().ExecContext(ctx,
		`UPDATE nomination_order SET has_nominated = FALSE WHERE auction_id = $1`,
		auctionID)
	if err != nil {
		return fmt.Errorf("resetting nomination round: %w", err)
	}
	return nil
}
