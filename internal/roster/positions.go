package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

// AddPosition defines a roster slot every team must fill.
func (a *App) AddPosition(ctx context.Context, auctionID uuid.UUID, name string, slotsPerTeam int, isFlex bool, displayOrder int) (*models.RosterPosition, error) {
	if name == "" {
		return nil, fmt.Errorf("position name is required")
	}
	if slotsPerTeam <= 0 {
		return nil, fmt.Errorf("slots per team must be positive")
	}

	pos := &models.RosterPosition{
		ID:           uuid.New(),
		AuctionID:    auctionID,
		Name:         name,
		SlotsPerTeam: slotsPerTeam,
		IsFlex:       isFlex,
		DisplayOrder: displayOrder,
	}
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := tx.Auctions().Get(ctx, auctionID); err != nil {
			return fmt.Errorf("loading auction: %w", err)
		}
		return tx.RosterPositions().Create(ctx, pos)
	})
	if err != nil {
		return nil, err
	}
	return pos, nil
}

// ListPositions returns the auction's roster positions in display order.
func (a *App) ListPositions(ctx context.Context, auctionID uuid.UUID) ([]models.RosterPosition, error) {
	return a.store.RosterPositions().ListByAuction(ctx, auctionID)
}

// ListPicks returns the auction's draft picks in pick order.
func (a *App) ListPicks(ctx context.Context, auctionID uuid.UUID) ([]models.DraftPick, error) {
	return a.store.DraftPicks().ListByAuction(ctx, auctionID)
}
