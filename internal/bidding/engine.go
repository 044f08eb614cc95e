// Package bidding validates and settles bids against an auction's live state.
// All read-modify-write sequences on the auction aggregate run inside one
// store transaction holding the auction row lock, so two bids on the same
// auction can never both win the high-bid check.
package bidding

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

// TurnAdvancer is what the engine needs from the nomination sequencer.
// AdvanceInTx must run inside the settlement transaction; running it
// separately would let a concurrent settlement observe a stale nominator.
type TurnAdvancer interface {
	AdvanceInTx(ctx context.Context, tx store.Store, auctionID uuid.UUID) (*uuid.UUID, error)
	BroadcastTurnChanged(ctx context.Context, auctionID uuid.UUID, nominatorID *uuid.UUID)
}

// App is the bidding engine.
type App struct {
	store       store.Store
	broadcaster events.Broadcaster
	turns       TurnAdvancer
	clock       clockwork.Clock
	logger      zerolog.Logger
}

// NewApp creates a bidding App.
func NewApp(st store.Store, bc events.Broadcaster, turns TurnAdvancer, clk clockwork.Clock, logger zerolog.Logger) *App {
	return &App{
		store:       st,
		broadcaster: bc,
		turns:       turns,
		clock:       clk,
		logger:      logger.With().Str("component", "bidding").Logger(),
	}
}

// BidResult reports the auction's bid state after a successful placement.
type BidResult struct {
	NewHighBid    int       `json:"new_high_bid"`
	NewHighBidder uuid.UUID `json:"new_high_bidder"`
}

// SettlementResult reports the outcome of closing bidding on a school.
type SettlementResult struct {
	DraftPickID  uuid.UUID `json:"draft_pick_id"`
	WinnerUserID uuid.UUID `json:"winner_user_id"`
	TeamID       uuid.UUID `json:"team_id"`
	Amount       int       `json:"amount"`
}

// PlaceBid validates and records a live bid. The amount must strictly beat
// the current high bid (or be positive when no bid exists) and the bidder's
// team must cover it with remaining budget. On success the ledger row and the
// auction's current-bid fields commit atomically.
func (a *App) PlaceBid(ctx context.Context, auctionID, userID, schoolID uuid.UUID, amount int) (*BidResult, error) {
	var result *BidResult
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		auc, err := tx.Auctions().GetForUpdate(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("loading auction: %w", err)
		}
		if auc.Status != models.AuctionStatusInProgress {
			return fmt.Errorf("%w: auction is %s", ErrNoActiveBidding, auc.Status)
		}
		if auc.CurrentSchoolID != nil && *auc.CurrentSchoolID != schoolID {
			return fmt.Errorf("%w: school %s", ErrSchoolMismatch, *auc.CurrentSchoolID)
		}

		floor := 0
		if auc.CurrentHighBid != nil {
			floor = *auc.CurrentHighBid
		}
		if amount <= floor {
			return fmt.Errorf("%w: %d does not beat %d", ErrBidTooLow, amount, floor)
		}

		team, err := a.resolveTeam(ctx, tx, auctionID, userID)
		if err != nil {
			return err
		}
		if team.RemainingBudget < amount {
			return fmt.Errorf("%w: %d remaining, %d bid", ErrInsufficientFunds, team.RemainingBudget, amount)
		}

		bid := &models.BidHistory{
			ID:        uuid.New(),
			AuctionID: auctionID,
			SchoolID:  &schoolID,
			UserID:    userID,
			Amount:    amount,
			BidType:   models.BidTypeLive,
			PlacedAt:  a.clock.Now().UTC(),
		}
		if err := tx.Bids().Append(ctx, bid); err != nil {
			return fmt.Errorf("appending bid: %w", err)
		}

		auc.CurrentSchoolID = &schoolID
		auc.CurrentHighBid = &amount
		auc.CurrentHighBidderID = &userID
		auc.ModifiedAt = a.clock.Now().UTC()
		if err := tx.Auctions().Update(ctx, auc); err != nil {
			return fmt.Errorf("updating auction: %w", err)
		}

		result = &BidResult{NewHighBid: amount, NewHighBidder: userID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("auction_id", auctionID.String()).
		Str("user_id", userID.String()).
		Int("amount", amount).
		Msg("bid placed")
	return result, nil
}

// SettleBidding closes bidding on the current school: it creates the draft
// pick, debits the winning team, flags the winning ledger row, clears the
// auction's current-bid fields, and advances the nomination turn, all in one
// transaction.
func (a *App) SettleBidding(ctx context.Context, auctionID uuid.UUID) (*SettlementResult, error) {
	var (
		result       *SettlementResult
		school       *models.School
		newNominator *uuid.UUID
	)
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		auc, err := tx.Auctions().GetForUpdate(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("loading auction: %w", err)
		}
		if !auc.HasActiveBidding() {
			return ErrNoActiveBidding
		}

		winnerID := *auc.CurrentHighBidderID
		schoolID := *auc.CurrentSchoolID
		amount := *auc.CurrentHighBid

		team, err := a.resolveTeam(ctx, tx, auctionID, winnerID)
		if err != nil {
			return err
		}
		if team.RemainingBudget < amount {
			return fmt.Errorf("%w: %d remaining, %d winning bid", ErrInsufficientFunds, team.RemainingBudget, amount)
		}

		school, err = tx.Schools().Get(ctx, schoolID)
		if err != nil {
			return fmt.Errorf("loading school: %w", err)
		}

		order, err := tx.DraftPicks().NextPickOrder(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("computing pick order: %w", err)
		}
		pick := &models.DraftPick{
			ID:              uuid.New(),
			AuctionID:       auctionID,
			TeamID:          team.ID,
			SchoolID:        schoolID,
			WinningBid:      amount,
			NominatorUserID: auc.CurrentNominatorID,
			WinnerUserID:    winnerID,
			PickOrder:       order,
			WonAt:           a.clock.Now().UTC(),
		}
		if err := tx.DraftPicks().Create(ctx, pick); err != nil {
			return fmt.Errorf("creating draft pick: %w", err)
		}

		if err := tx.Teams().UpdateRemainingBudget(ctx, team.ID, team.RemainingBudget-amount); err != nil {
			return fmt.Errorf("debiting team budget: %w", err)
		}

		winningRow, err := tx.Bids().FindLive(ctx, auctionID, schoolID, winnerID, amount)
		if err != nil {
			return fmt.Errorf("locating winning bid: %w", err)
		}
		if err := tx.Bids().MarkWinning(ctx, winningRow.ID); err != nil {
			return fmt.Errorf("flagging winning bid: %w", err)
		}

		auc.ClearCurrentBid()
		auc.ModifiedAt = a.clock.Now().UTC()
		if err := tx.Auctions().Update(ctx, auc); err != nil {
			return fmt.Errorf("updating auction: %w", err)
		}

		newNominator, err = a.turns.AdvanceInTx(ctx, tx, auctionID)
		if err != nil {
			return fmt.Errorf("advancing nomination turn: %w", err)
		}

		result = &SettlementResult{
			DraftPickID:  pick.ID,
			WinnerUserID: winnerID,
			TeamID:       team.ID,
			Amount:       amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("auction_id", auctionID.String()).
		Str("draft_pick_id", result.DraftPickID.String()).
		Int("amount", result.Amount).
		Msg("bidding settled")

	if err := a.broadcaster.Broadcast(ctx, auctionID, events.TypeBiddingCompleted, events.BiddingCompletedPayload{
		DraftPickID:  result.DraftPickID,
		SchoolName:   school.Name,
		WinningBid:   result.Amount,
		WinnerUserID: result.WinnerUserID,
		TeamID:       result.TeamID,
	}); err != nil {
		a.logger.Warn().Err(err).Msg("failed to broadcast BiddingCompleted")
	}
	a.turns.BroadcastTurnChanged(ctx, auctionID, newNominator)

	return result, nil
}

// BidHistory lists the auction's ledger, oldest first.
func (a *App) BidHistory(ctx context.Context, auctionID uuid.UUID) ([]models.BidHistory, error) {
	return a.store.Bids().ListByAuction(ctx, auctionID)
}

// resolveTeam picks the team a user bids for. A user may hold several role
// rows; team-coach beats proxy-coach, further ties broken by team id so the
// choice is deterministic.
func (a *App) resolveTeam(ctx context.Context, tx store.Store, auctionID, userID uuid.UUID) (*models.Team, error) {
	roles, err := tx.Roles().ListByUser(ctx, auctionID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user roles: %w", err)
	}

	var candidates []models.UserRole
	for _, r := range roles {
		if r.Role == models.RoleTeamCoach || r.Role == models.RoleProxyCoach {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrTeamRequired
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Role.Priority() != candidates[j].Role.Priority() {
			return candidates[i].Role.Priority() < candidates[j].Role.Priority()
		}
		return candidates[i].TeamID.String() < candidates[j].TeamID.String()
	})

	team, err := tx.Teams().Get(ctx, candidates[0].TeamID)
	if err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}
	return team, nil
}
