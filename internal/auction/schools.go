package auction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

// AddSchool seeds one draftable school. Bulk CSV import lives in a
// collaborator service; this is the path it calls per row.
func (a *App) AddSchool(ctx context.Context, auctionID uuid.UUID, name, position string) (*models.School, error) {
	if name == "" {
		return nil, fmt.Errorf("school name is required")
	}

	school := &models.School{
		ID:        uuid.New(),
		AuctionID: auctionID,
		Name:      name,
		Position:  position,
	}
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := tx.Auctions().Get(ctx, auctionID); err != nil {
			return fmt.Errorf("loading auction: %w", err)
		}
		return tx.Schools().Create(ctx, school)
	})
	if err != nil {
		return nil, err
	}
	return school, nil
}

// ListSchools returns the auction's draftable schools.
func (a *App) ListSchools(ctx context.Context, auctionID uuid.UUID) ([]models.School, error) {
	return a.store.Schools().ListByAuction(ctx, auctionID)
}

// ListUsers returns the auction's participants.
func (a *App) ListUsers(ctx context.Context, auctionID uuid.UUID) ([]models.User, error) {
	return a.store.Users().ListByAuction(ctx, auctionID)
}
