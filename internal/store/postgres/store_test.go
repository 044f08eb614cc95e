package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store/postgres"
)

func seedAuction(t *testing.T, s *postgres.Store) *models.Auction {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	auc := &models.Auction{
		ID:           uuid.New(),
		Name:         "integration draft",
		Status:       models.AuctionStatusDraft,
		JoinCode:     "PGT357",
		RecoveryCode: "pgtestrecoverycode01",
		CreatedAt:    now,
		ModifiedAt:   now,
	}
	if err := s.Auctions().Create(context.Background(), auc); err != nil {
		t.Fatalf("seeding auction: %v", err)
	}
	return auc
}

func TestAuctionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s := postgres.New(db)
	ctx := context.Background()
	auc := seedAuction(t, s)

	got, err := s.Auctions().Get(ctx, auc.ID)
	if err != nil {
		t.Fatalf("getting auction: %v", err)
	}
	if got.Name != auc.Name || got.JoinCode != auc.JoinCode || got.Status != auc.Status {
		t.Errorf("round trip mismatch: %+v", got)
	}

	byCode, err := s.Auctions().GetByJoinCode(ctx, "pgt357")
	if err != nil {
		t.Fatalf("join code lookup: %v", err)
	}
	if byCode.ID != auc.ID {
		t.Error("join code lookup is not case-insensitive")
	}

	byRecovery, err := s.Auctions().GetByRecoveryCode(ctx, auc.RecoveryCode)
	if err != nil {
		t.Fatalf("recovery code lookup: %v", err)
	}
	if byRecovery.ID != auc.ID {
		t.Error("recovery code lookup returned the wrong auction")
	}

	if _, err := s.Auctions().Get(ctx, uuid.New()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db := newTestDB(t)
	s := postgres.New(db)
	ctx := context.Background()
	auc := seedAuction(t, s)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Store) error {
		a, err := tx.Auctions().GetForUpdate(ctx, auc.ID)
		if err != nil {
			return err
		}
		a.Name = "mutated"
		if err := tx.Auctions().Update(ctx, a); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want the injected error", err)
	}

	got, _ := s.Auctions().Get(ctx, auc.ID)
	if got.Name != "integration draft" {
		t.Error("rolled-back update leaked")
	}
}

func TestCurrentBidConstraint(t *testing.T) {
	db := newTestDB(t)
	s := postgres.New(db)
	ctx := context.Background()
	auc := seedAuction(t, s)

	// Setting only one of the three live-bidding columns violates the
	// all-or-none check constraint.
	amount := 10
	auc.CurrentHighBid = &amount
	if err := s.Auctions().Update(ctx, auc); err == nil {
		t.Fatal("partial current-bid update should violate the check constraint")
	}
}

func TestUserDisplayNameUniquePerAuction(t *testing.T) {
	db := newTestDB(t)
	s := postgres.New(db)
	ctx := context.Background()
	auc := seedAuction(t, s)

	now := time.Now().UTC()
	u := &models.User{ID: uuid.New(), AuctionID: auc.ID, DisplayName: "Alice", CreatedAt: now}
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	dup := &models.User{ID: uuid.New(), AuctionID: auc.ID, DisplayName: "ALICE", CreatedAt: now}
	if err := s.Users().Create(ctx, dup); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict for a case-insensitive duplicate display name", err)
	}

	got, err := s.Users().GetByDisplayName(ctx, auc.ID, "alice")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != u.ID {
		t.Error("display name lookup returned the wrong user")
	}
}

func TestBudgetNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	s := postgres.New(db)
	ctx := context.Background()
	auc := seedAuction(t, s)

	now := time.Now().UTC()
	u := &models.User{ID: uuid.New(), AuctionID: auc.ID, DisplayName: "owner", CreatedAt: now}
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	team := &models.Team{
		ID: uuid.New(), AuctionID: auc.ID, OwnerUserID: u.ID,
		Name: "team", Budget: 50, RemainingBudget: 50, CreatedAt: now,
	}
	if err := s.Teams().Create(ctx, team); err != nil {
		t.Fatalf("creating team: %v", err)
	}

	if err := s.Teams().UpdateRemainingBudget(ctx, team.ID, -1); err == nil {
		t.Fatal("negative remaining budget was accepted")
	}
	if err := s.Teams().UpdateRemainingBudget(ctx, team.ID, 0); err != nil {
		t.Fatalf("zero remaining budget rejected: %v", err)
	}
}
