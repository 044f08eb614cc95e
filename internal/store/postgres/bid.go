package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
)

type bidRepo struct{ s *Store }

func (r bidRepo) Append(ctx context.Context, b *models.BidHistory) error {
	_, err := r.s.q().ExecContext(ctx,
		`INSERT INTO bid_history (id, auction_id, school_id, user_id, amount,
			bid_type, is_winning_bid, tag, placed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.AuctionID, b.SchoolID, b.UserID, b.Amount,
		b.BidType, b.IsWinningBid, b.Tag, b.PlacedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting bid: %w", err)
	}
	return nil
}

func (r bidRepo) MarkWinning(ctx context.Context, id uuid.UUID) error {
	return requireRow(r.s.q().ExecContext(ctx,
		`UPDATE bid_history SET is_winning_bid = TRUE WHERE id = $1`, id))
}

func (r bidRepo) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.BidHistory, error) {
	var bids []models.BidHistory
	err := r.s.q().SelectContext(ctx, &bids,
		`SELECT * FROM bid_history WHERE auction_id = $1 ORDER BY placed_at ASC, id ASC`,
		auctionID)
	if err != nil {
		return nil, fmt.Errorf("listing bids: %w", err)
	}
	return bids, nil
}

func (r bidRepo) FindLive(ctx context.Context, auctionID, schoolID, userID uuid.UUID, amount int) (*models.BidHistory, error) {
	var b models.BidHistory
	err := r.s.q().GetContext(ctx, &b,
		`SELECT * FROM bid_history
		 WHERE auction_id = $1 AND school_id = $2 AND user_id = $3
		   AND amount = $4 AND bid_type = $5
		 ORDER BY placed_at DESC, id DESC LIMIT 1`,
		auctionID, schoolID, userID, amount, models.BidTypeLive)
	if err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r bidRepo) HighestByTag(ctx context.Context, auctionID uuid.UUID, tag string) (*models.BidHistory, error) {
	var b models.BidHistory
	err := r.s.q().GetContext(ctx, &b,
		`SELECT * FROM bid_history
		 WHERE auction_id = $1 AND tag = $2 AND bid_type = $3
		 ORDER BY amount DESC, placed_at ASC LIMIT 1`,
		auctionID, tag, models.BidTypeTest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading highest tagged bid: %w", err)
	}
	return &b, nil
}

func (r bidRepo) DeleteTestBids(ctx context.Context, auctionID uuid.UUID) error {
	_, err := r.s.q().ExecContext(ctx,
		`DELETE FROM bid_history WHERE auction_id = $1 AND bid_type = $2`,
		auctionID, models.BidTypeTest)
	if err != nil {
		return fmt.Errorf("deleting test bids: %w", err)
	}
	return nil
}
