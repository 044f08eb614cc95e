package bidding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

// practiceSchools are the virtual schools the waiting room cycles through.
// They exist only as ledger tags; no school rows are created for them.
var practiceSchools = []string{
	"Leagify University",
	"Draft Tech",
	"Auction State",
	"Bidding College",
	"Practice A&M",
}

func practiceTag(name string) string {
	return "practice:" + name
}

// PracticeState describes the waiting room's current virtual school and high
// bid.
type PracticeState struct {
	SchoolName    string     `json:"school_name"`
	HighBid       *int       `json:"high_bid"`
	HighBidderID  *uuid.UUID `json:"high_bidder_id"`
	HighBidder    string     `json:"high_bidder"`
	SchoolsPlayed int        `json:"schools_played"`
}

// PracticeState returns the current virtual school and its high bid, derived
// from the test-bid ledger.
func (a *App) PracticeState(ctx context.Context, auctionID uuid.UUID) (*PracticeState, error) {
	auc, err := a.store.Auctions().Get(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("loading auction: %w", err)
	}

	name := practiceSchools[auc.PracticeSchoolIndex%len(practiceSchools)]
	state := &PracticeState{SchoolName: name}

	high, err := a.store.Bids().HighestByTag(ctx, auctionID, practiceTag(name))
	if err != nil {
		return nil, fmt.Errorf("loading high bid: %w", err)
	}
	if high != nil {
		state.HighBid = &high.Amount
		state.HighBidderID = &high.UserID
		if user, uerr := a.store.Users().Get(ctx, high.UserID); uerr == nil {
			state.HighBidder = user.DisplayName
		}
	}
	return state, nil
}

// PlacePracticeBid records a test bid against the current virtual school.
// The rules mirror live bidding (strictly beat the current high, or be
// positive) but nothing touches budgets or the auction's live-bid fields.
// The first successful bid marks the user as having tested bidding.
func (a *App) PlacePracticeBid(ctx context.Context, auctionID, userID uuid.UUID, amount int) (*models.BidHistory, error) {
	var (
		bid  *models.BidHistory
		user *models.User
	)
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		auc, err := tx.Auctions().GetForUpdate(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("loading auction: %w", err)
		}

		user, err = tx.Users().Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading user: %w", err)
		}
		if user.AuctionID != auctionID {
			return store.ErrNotFound
		}
		if user.HasPassedOnTestBid {
			return ErrAlreadyPassed
		}

		name := practiceSchools[auc.PracticeSchoolIndex%len(practiceSchools)]
		tag := practiceTag(name)

		floor := 0
		high, err := tx.Bids().HighestByTag(ctx, auctionID, tag)
		if err != nil {
			return fmt.Errorf("loading high bid: %w", err)
		}
		if high != nil {
			floor = high.Amount
		}
		if amount <= floor {
			return fmt.Errorf("%w: %d does not beat %d", ErrBidTooLow, amount, floor)
		}

		bid = &models.BidHistory{
			ID:        uuid.New(),
			AuctionID: auctionID,
			UserID:    userID,
			Amount:    amount,
			BidType:   models.BidTypeTest,
			Tag:       tag,
			PlacedAt:  a.clock.Now().UTC(),
		}
		if err := tx.Bids().Append(ctx, bid); err != nil {
			return fmt.Errorf("appending test bid: %w", err)
		}

		if !user.HasTestedBidding {
			user.HasTestedBidding = true
			if err := tx.Users().Update(ctx, user); err != nil {
				return fmt.Errorf("updating user: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := a.broadcaster.Broadcast(ctx, auctionID, events.TypeTestBidPlaced, events.TestBidPlacedPayload{
		AuctionID:  auctionID,
		BidderName: user.DisplayName,
		Amount:     amount,
		Timestamp:  bid.PlacedAt,
	}); err != nil {
		a.logger.Warn().Err(err).Msg("failed to broadcast TestBidPlaced")
	}
	return bid, nil
}

// PassPractice records that a user sits out the current virtual school. The
// pass holds until the round completes; further practice bids from the user
// fail with ErrAlreadyPassed.
func (a *App) PassPractice(ctx context.Context, auctionID, userID uuid.UUID) error {
	var user *models.User
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		u, err := tx.Users().Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading user: %w", err)
		}
		if u.AuctionID != auctionID {
			return store.ErrNotFound
		}
		if u.HasPassedOnTestBid {
			return ErrAlreadyPassed
		}
		u.HasPassedOnTestBid = true
		if err := tx.Users().Update(ctx, u); err != nil {
			return fmt.Errorf("updating user: %w", err)
		}
		user = u
		return nil
	})
	if err != nil {
		return err
	}

	if err := a.broadcaster.Broadcast(ctx, auctionID, events.TypeUserPassedOnTestBid, events.UserPassedOnTestBidPayload{
		AuctionID:   auctionID,
		DisplayName: user.DisplayName,
	}); err != nil {
		a.logger.Warn().Err(err).Msg("failed to broadcast UserPassedOnTestBid")
	}
	return nil
}

// CompletePracticeRound closes the current virtual school: the high test bid
// (if any) is flagged winning, the auction advances to the next virtual
// school, and every user's pass flag resets for the new round.
func (a *App) CompletePracticeRound(ctx context.Context, auctionID uuid.UUID) (string, error) {
	var nextName string
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		auc, err := tx.Auctions().GetForUpdate(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("loading auction: %w", err)
		}

		name := practiceSchools[auc.PracticeSchoolIndex%len(practiceSchools)]
		high, err := tx.Bids().HighestByTag(ctx, auctionID, practiceTag(name))
		if err != nil {
			return fmt.Errorf("loading high bid: %w", err)
		}
		if high != nil {
			if err := tx.Bids().MarkWinning(ctx, high.ID); err != nil {
				return fmt.Errorf("flagging winning test bid: %w", err)
			}
		}

		auc.PracticeSchoolIndex = (auc.PracticeSchoolIndex + 1) % len(practiceSchools)
		auc.ModifiedAt = a.clock.Now().UTC()
		if err := tx.Auctions().Update(ctx, auc); err != nil {
			return fmt.Errorf("updating auction: %w", err)
		}

		if err := tx.Users().ResetPracticeFlags(ctx, auctionID, false); err != nil {
			return fmt.Errorf("resetting pass flags: %w", err)
		}

		nextName = practiceSchools[auc.PracticeSchoolIndex]
		return nil
	})
	if err != nil {
		return "", err
	}

	a.logger.Info().
		Str("auction_id", auctionID.String()).
		Str("next_school", nextName).
		Msg("practice round completed")
	return nextName, nil
}

// ResetPracticeBids wipes the test-bid ledger and both per-user practice
// flags, returning the waiting room to a clean slate.
func (a *App) ResetPracticeBids(ctx context.Context, auctionID uuid.UUID) error {
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.Bids().DeleteTestBids(ctx, auctionID); err != nil {
			return fmt.Errorf("deleting test bids: %w", err)
		}
		if err := tx.Users().ResetPracticeFlags(ctx, auctionID, true); err != nil {
			return fmt.Errorf("resetting practice flags: %w", err)
		}
		auc, err := tx.Auctions().GetForUpdate(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("loading auction: %w", err)
		}
		auc.PracticeSchoolIndex = 0
		auc.ModifiedAt = a.clock.Now().UTC()
		return tx.Auctions().Update(ctx, auc)
	})
	if err != nil {
		return err
	}

	a.logger.Info().Str("auction_id", auctionID.String()).Msg("practice bids reset")
	return nil
}
