package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
)

type auctionRepo struct{ s *Store }

const auctionColumns = `id, name, status, join_code, recovery_code, creator_id,
	current_nominator_id, current_school_id, current_high_bid, current_high_bidder_id,
	practice_school_index, created_at, started_at, completed_at, modified_at`

func (r auctionRepo) Create(ctx context.Context, a *models.Auction) error {
	_, err := r.s.q().ExecContext(ctx,
		`INSERT INTO auctions (`+auctionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		a.ID, a.Name, a.Status, a.JoinCode, a.RecoveryCode, a.CreatorID,
		a.CurrentNominatorID, a.CurrentSchoolID, a.CurrentHighBid, a.CurrentHighBidderID,
		a.PracticeSchoolIndex, a.CreatedAt, a.StartedAt, a.CompletedAt, a.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting auction: %w", mapErr(err))
	}
	return nil
}

func (r auctionRepo) Get(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	var a models.Auction
	err := r.s.q().GetContext(ctx, &a,
		`SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r auctionRepo) GetByJoinCode(ctx context.Context, code string) (*models.Auction, error) {
	var a models.Auction
	err := r.s.q().GetContext(ctx, &a,
		`SELECT `+auctionColumns+` FROM auctions WHERE UPPER(join_code) = UPPER($1)`, code)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r auctionRepo) GetByRecoveryCode(ctx context.Context, code string) (*models.Auction, error) {
	var a models.Auction
	err := r.s.q().GetContext(ctx, &a,
		`SELECT `+auctionColumns+` FROM auctions WHERE recovery_code = $1`, code)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

// GetForUpdate takes the auction's row lock for the rest of the transaction,
// serializing concurrent bid placements and settlements per auction.
func (r auctionRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`
	if r.s.tx != nil {
		query += ` FOR UPDATE`
	}
	var a models.Auction
	if err := r.s.q().GetContext(ctx, &a, query, id); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r auctionRepo) Update(ctx context.Context, a *models.Auction) error {
	return requireRow(r.s.q().ExecContext(ctx,
		`UPDATE auctions SET
			name = $2, status = $3, creator_id = $4,
			current_nominator_id = $5, current_school_id = $6,
			current_high_bid = $7, current_high_bidder_id = $8,
			practice_school_index = $9, started_at = $10, completed_at = $11,
			modified_at = $12
		 WHERE id = $1`,
		a.ID, a.Name, a.Status, a.CreatorID,
		a.CurrentNominatorID, a.CurrentSchoolID,
		a.CurrentHighBid, a.CurrentHighBidderID,
		a.PracticeSchoolIndex, a.StartedAt, a.CompletedAt,
		a.ModifiedAt,
	))
}
