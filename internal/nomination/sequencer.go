// Package nomination owns the ordered turn list deciding which participant
// nominates the next school.
package nomination

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

// App advances and maintains the nomination order for an auction.
type App struct {
	store       store.Store
	broadcaster events.Broadcaster
	logger      zerolog.Logger
}

// NewApp creates a nomination App.
func NewApp(st store.Store, bc events.Broadcaster, logger zerolog.Logger) *App {
	return &App{
		store:       st,
		broadcaster: bc,
		logger:      logger.With().Str("component", "nomination").Logger(),
	}
}

// Append adds a user to the end of the auction's nomination order.
func (a *App) Append(ctx context.Context, auctionID, userID uuid.UUID) (*models.NominationOrder, error) {
	var entry *models.NominationOrder
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		entries, err := tx.Nominations().ListByAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("listing nomination order: %w", err)
		}
		next := 1
		if n := len(entries); n > 0 {
			next = entries[n-1].Position + 1
		}
		entry = &models.NominationOrder{
			ID:        uuid.New(),
			AuctionID: auctionID,
			UserID:    userID,
			Position:  next,
		}
		return tx.Nominations().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// SetSkipped marks a user's entry skipped (or unskipped). Skipped users keep
// their position but are never selected as nominator.
func (a *App) SetSkipped(ctx context.Context, auctionID, userID uuid.UUID, skipped bool) error {
	return a.store.WithTx(ctx, func(tx store.Store) error {
		entries, err := tx.Nominations().ListByAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("listing nomination order: %w", err)
		}
		for i := range entries {
			if entries[i].UserID == userID {
				entries[i].IsSkipped = skipped
				return tx.Nominations().Update(ctx, &entries[i])
			}
		}
		return store.ErrNotFound
	})
}

// List returns the auction's nomination order, ascending by position.
func (a *App) List(ctx context.Context, auctionID uuid.UUID) ([]models.NominationOrder, error) {
	return a.store.Nominations().ListByAuction(ctx, auctionID)
}

// AdvanceTurn moves the nomination turn to the next eligible participant and
// announces the change. See AdvanceInTx for the selection rules.
func (a *App) AdvanceTurn(ctx context.Context, auctionID uuid.UUID) (*uuid.UUID, error) {
	var next *uuid.UUID
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		next, err = a.AdvanceInTx(ctx, tx, auctionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	a.BroadcastTurnChanged(ctx, auctionID, next)
	return next, nil
}

// AdvanceInTx runs the turn advance inside the caller's transaction, so a
// settlement and the advance it triggers commit together:
//
//  1. the current nominator's entry is marked has-nominated,
//  2. the next entry with !has-nominated && !is-skipped (ascending position)
//     becomes nominator,
//  3. if none remains the round resets every has-nominated flag and restarts
//     from the first non-skipped entry,
//  4. if everyone is skipped the nominator becomes nil.
func (a *App) AdvanceInTx(ctx context.Context, tx store.Store, auctionID uuid.UUID) (*uuid.UUID, error) {
	auc, err := tx.Auctions().GetForUpdate(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("loading auction: %w", err)
	}

	entries, err := tx.Nominations().ListByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("listing nomination order: %w", err)
	}

	if auc.CurrentNominatorID != nil {
		for i := range entries {
			if entries[i].UserID == *auc.CurrentNominatorID && !entries[i].HasNominated {
				entries[i].HasNominated = true
				if err := tx.Nominations().Update(ctx, &entries[i]); err != nil {
					return nil, fmt.Errorf("marking nominator done: %w", err)
				}
				break
			}
		}
	}

	next := pickNext(entries)
	if next == nil {
		// End of round: everyone eligible has nominated.
		if err := tx.Nominations().ResetHasNominated(ctx, auctionID); err != nil {
			return nil, fmt.Errorf("resetting round: %w", err)
		}
		for i := range entries {
			entries[i].HasNominated = false
		}
		next = pickNext(entries)
	}

	if next == nil {
		auc.CurrentNominatorID = nil
	} else {
		id := next.UserID
		auc.CurrentNominatorID = &id
	}
	if err := tx.Auctions().Update(ctx, auc); err != nil {
		return nil, fmt.Errorf("updating auction: %w", err)
	}
	return auc.CurrentNominatorID, nil
}

// BroadcastTurnChanged emits NominationTurnChanged for the given nominator.
// Used by this app and by settlement after its transaction commits.
func (a *App) BroadcastTurnChanged(ctx context.Context, auctionID uuid.UUID, nominatorID *uuid.UUID) {
	payload := events.NominationTurnChangedPayload{CurrentNominatorUserID: nominatorID}
	if nominatorID != nil {
		if user, err := a.store.Users().Get(ctx, *nominatorID); err == nil {
			payload.CurrentNominatorDisplayName = user.DisplayName
		}
	}
	if err := a.broadcaster.Broadcast(ctx, auctionID, events.TypeNominationTurnChanged, payload); err != nil {
		a.logger.Warn().Err(err).Msg("failed to broadcast NominationTurnChanged")
	}
}

// pickNext returns the first entry, by ascending position, that has not yet
// nominated and is not skipped.
func pickNext(entries []models.NominationOrder) *models.NominationOrder {
	for i := range entries {
		if !entries[i].HasNominated && !entries[i].IsSkipped {
			return &entries[i]
		}
	}
	return nil
}
