package auction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

// collision retry budget for join-code generation
const maxCodeAttempts = 10

// App owns the auction lifecycle: creation with room codes, the status
// transition table, lookups, participants, and teams.
type App struct {
	store       store.Store
	broadcaster events.Broadcaster
	clock       clockwork.Clock
	logger      zerolog.Logger
}

// NewApp creates an auction App.
func NewApp(st store.Store, bc events.Broadcaster, clk clockwork.Clock, logger zerolog.Logger) *App {
	return &App{
		store:       st,
		broadcaster: bc,
		clock:       clk,
		logger:      logger.With().Str("component", "auction").Logger(),
	}
}

// CreateAuction creates a new auction in DRAFT with fresh join and recovery
// codes. Codes are checked for collision against existing auctions before
// insert.
func (a *App) CreateAuction(ctx context.Context, name string, creatorID *uuid.UUID) (*models.Auction, error) {
	if name == "" {
		return nil, fmt.Errorf("auction name is required")
	}

	joinCode, err := a.uniqueJoinCode(ctx)
	if err != nil {
		return nil, err
	}
	recoveryCode, err := a.uniqueRecoveryCode(ctx)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now().UTC()
	auc := &models.Auction{
		ID:           uuid.New(),
		Name:         name,
		Status:       models.AuctionStatusDraft,
		JoinCode:     joinCode,
		RecoveryCode: recoveryCode,
		CreatorID:    creatorID,
		CreatedAt:    now,
		ModifiedAt:   now,
	}
	if err := a.store.Auctions().Create(ctx, auc); err != nil {
		return nil, fmt.Errorf("creating auction: %w", err)
	}

	a.logger.Info().
		Str("auction_id", auc.ID.String()).
		Str("join_code", auc.JoinCode).
		Msg("auction created")
	return auc, nil
}

func (a *App) uniqueJoinCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := newJoinCode()
		if err != nil {
			return "", fmt.Errorf("generating join code: %w", err)
		}
		_, err = a.store.Auctions().GetByJoinCode(ctx, code)
		if errors.Is(err, store.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking join code: %w", err)
		}
	}
	return "", fmt.Errorf("exhausted join code attempts")
}

func (a *App) uniqueRecoveryCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := newRecoveryCode()
		if err != nil {
			return "", fmt.Errorf("generating recovery code: %w", err)
		}
		_, err = a.store.Auctions().GetByRecoveryCode(ctx, code)
		if errors.Is(err, store.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking recovery code: %w", err)
		}
	}
	return "", fmt.Errorf("exhausted recovery code attempts")
}

// GetAuction retrieves an auction by id.
func (a *App) GetAuction(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	return a.store.Auctions().Get(ctx, id)
}

// GetByJoinCode retrieves an auction by its room code.
func (a *App) GetByJoinCode(ctx context.Context, code string) (*models.Auction, error) {
	return a.store.Auctions().GetByJoinCode(ctx, code)
}

// RecoverByCode retrieves an auction by its recovery code, letting a creator
// who lost the room link regain admin access.
func (a *App) RecoverByCode(ctx context.Context, code string) (*models.Auction, error) {
	if code == "" {
		return nil, store.ErrNotFound
	}
	return a.store.Auctions().GetByRecoveryCode(ctx, code)
}

// SetStatus applies a lifecycle transition. Illegal transitions fail with
// ErrInvalidTransition and leave the auction untouched. Entering IN_PROGRESS
// for the first time stamps StartedAt; entering COMPLETE stamps CompletedAt.
func (a *App) SetStatus(ctx context.Context, id uuid.UUID, status models.AuctionStatus) (*models.Auction, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	var out *models.Auction
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		auc, err := tx.Auctions().GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("loading auction: %w", err)
		}
		if !auc.Status.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, auc.Status, status)
		}

		now := a.clock.Now().UTC()
		if status == models.AuctionStatusInProgress && auc.StartedAt == nil {
			auc.StartedAt = &now
		}
		if status == models.AuctionStatusComplete && auc.CompletedAt == nil {
			auc.CompletedAt = &now
		}
		auc.Status = status
		auc.ModifiedAt = now

		if err := tx.Auctions().Update(ctx, auc); err != nil {
			return fmt.Errorf("updating auction: %w", err)
		}
		out = auc
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("auction_id", id.String()).
		Str("status", string(out.Status)).
		Msg("auction status changed")
	return out, nil
}

// JoinAuction registers a participant by room code. Display names are unique
// per auction, case-insensitively.
func (a *App) JoinAuction(ctx context.Context, joinCode, displayName string) (*models.User, *models.Auction, error) {
	if displayName == "" {
		return nil, nil, fmt.Errorf("display name is required")
	}

	auc, err := a.store.Auctions().GetByJoinCode(ctx, joinCode)
	if err != nil {
		return nil, nil, fmt.Errorf("looking up auction: %w", err)
	}

	var user *models.User
	err = a.store.WithTx(ctx, func(tx store.Store) error {
		_, err := tx.Users().GetByDisplayName(ctx, auc.ID, displayName)
		if err == nil {
			return ErrNameTaken
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking display name: %w", err)
		}

		user = &models.User{
			ID:          uuid.New(),
			AuctionID:   auc.ID,
			DisplayName: displayName,
			Connected:   true,
			CreatedAt:   a.clock.Now().UTC(),
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, nil, err
	}

	a.logger.Info().
		Str("auction_id", auc.ID.String()).
		Str("user_id", user.ID.String()).
		Str("display_name", displayName).
		Msg("user joined auction")
	return user, auc, nil
}

// SetReady flips a user's ready-to-draft flag and announces it to the room.
func (a *App) SetReady(ctx context.Context, auctionID, userID uuid.UUID, ready bool) error {
	var user *models.User
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		u, err := tx.Users().Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading user: %w", err)
		}
		if u.AuctionID != auctionID {
			return store.ErrNotFound
		}
		u.IsReadyToDraft = ready
		if err := tx.Users().Update(ctx, u); err != nil {
			return fmt.Errorf("updating user: %w", err)
		}
		user = u
		return nil
	})
	if err != nil {
		return err
	}

	if err := a.broadcaster.Broadcast(ctx, auctionID, events.TypeReadinessUpdated, events.ReadinessUpdatedPayload{
		AuctionID:   auctionID,
		DisplayName: user.DisplayName,
		IsReady:     ready,
	}); err != nil {
		a.logger.Warn().Err(err).Msg("failed to broadcast ReadinessUpdated")
	}
	return nil
}

// CreateTeam creates a team with a fixed budget and links the owner as its
// team coach.
func (a *App) CreateTeam(ctx context.Context, auctionID, ownerUserID uuid.UUID, name string, budget int) (*models.Team, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("budget must be positive")
	}

	team := &models.Team{
		ID:              uuid.New(),
		AuctionID:       auctionID,
		OwnerUserID:     ownerUserID,
		Name:            name,
		Budget:          budget,
		RemainingBudget: budget,
		CreatedAt:       a.clock.Now().UTC(),
	}
	err := a.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := tx.Auctions().Get(ctx, auctionID); err != nil {
			return fmt.Errorf("loading auction: %w", err)
		}
		if err := tx.Teams().Create(ctx, team); err != nil {
			return fmt.Errorf("creating team: %w", err)
		}
		role := &models.UserRole{
			ID:        uuid.New(),
			AuctionID: auctionID,
			UserID:    ownerUserID,
			TeamID:    team.ID,
			Role:      models.RoleTeamCoach,
		}
		if err := tx.Roles().Create(ctx, role); err != nil {
			return fmt.Errorf("creating coach role: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// LinkProxyCoach lets a user bid on behalf of another user's team.
func (a *App) LinkProxyCoach(ctx context.Context, auctionID, userID, teamID uuid.UUID) error {
	return a.store.WithTx(ctx, func(tx store.Store) error {
		team, err := tx.Teams().Get(ctx, teamID)
		if err != nil {
			return fmt.Errorf("loading team: %w", err)
		}
		if team.AuctionID != auctionID {
			return store.ErrNotFound
		}
		role := &models.UserRole{
			ID:        uuid.New(),
			AuctionID: auctionID,
			UserID:    userID,
			TeamID:    teamID,
			Role:      models.RoleProxyCoach,
		}
		return tx.Roles().Create(ctx, role)
	})
}

// ListTeams returns the auction's teams with remaining budgets.
func (a *App) ListTeams(ctx context.Context, auctionID uuid.UUID) ([]models.Team, error) {
	return a.store.Teams().ListByAuction(ctx, auctionID)
}
