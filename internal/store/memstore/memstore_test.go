package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

func seedAuction(t *testing.T, s *Store) *models.Auction {
	t.Helper()
	auc := &models.Auction{
		ID:         uuid.New(),
		Name:       "seed",
		Status:     models.AuctionStatusDraft,
		JoinCode:   "SEED42",
		CreatedAt:  time.Now(),
		ModifiedAt: time.Now(),
	}
	if err := s.Auctions().Create(context.Background(), auc); err != nil {
		t.Fatalf("seeding auction: %v", err)
	}
	return auc
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	auc := seedAuction(t, s)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Store) error {
		a, err := tx.Auctions().Get(ctx, auc.ID)
		if err != nil {
			return err
		}
		a.Name = "mutated"
		if err := tx.Auctions().Update(ctx, a); err != nil {
			return err
		}
		user := &models.User{ID: uuid.New(), AuctionID: auc.ID, DisplayName: "ghost", CreatedAt: time.Now()}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want the injected error", err)
	}

	got, _ := s.Auctions().Get(ctx, auc.ID)
	if got.Name != "seed" {
		t.Error("rolled-back update leaked")
	}
	users, _ := s.Users().ListByAuction(ctx, auc.ID)
	if len(users) != 0 {
		t.Error("rolled-back insert leaked")
	}
}

func TestNestedWithTxJoinsTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()
	auc := seedAuction(t, s)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Store) error {
		a, err := tx.Auctions().Get(ctx, auc.ID)
		if err != nil {
			return err
		}
		a.Name = "outer"
		if err := tx.Auctions().Update(ctx, a); err != nil {
			return err
		}
		// The inner WithTx joins; its writes share the outer rollback.
		return tx.WithTx(ctx, func(inner store.Store) error {
			a.Name = "inner"
			if err := inner.Auctions().Update(ctx, a); err != nil {
				return err
			}
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want the injected error", err)
	}

	got, _ := s.Auctions().Get(ctx, auc.ID)
	if got.Name != "seed" {
		t.Errorf("auction name = %q, want both writes rolled back", got.Name)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	auc := seedAuction(t, s)

	a, _ := s.Auctions().Get(ctx, auc.ID)
	a.Name = "scribbled"

	got, _ := s.Auctions().Get(ctx, auc.ID)
	if got.Name != "seed" {
		t.Error("mutating a read result leaked into the store")
	}
}

func TestDuplicateDisplayNameConflicts(t *testing.T) {
	s := New()
	ctx := context.Background()
	auc := seedAuction(t, s)

	u := &models.User{ID: uuid.New(), AuctionID: auc.ID, DisplayName: "Alice", CreatedAt: time.Now()}
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	dup := &models.User{ID: uuid.New(), AuctionID: auc.ID, DisplayName: "ALICE", CreatedAt: time.Now()}
	if err := s.Users().Create(ctx, dup); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
}

func TestDuplicateAuctionCodesConflict(t *testing.T) {
	s := New()
	ctx := context.Background()
	auc := seedAuction(t, s)

	sameJoin := &models.Auction{
		ID: uuid.New(), Name: "copycat", Status: models.AuctionStatusDraft,
		JoinCode: "seed42", CreatedAt: time.Now(), ModifiedAt: time.Now(),
	}
	if err := s.Auctions().Create(ctx, sameJoin); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict for duplicate join code", err)
	}

	auc.RecoveryCode = "recovery-recovery-20"
	if err := s.Auctions().Update(ctx, auc); err != nil {
		t.Fatalf("setting recovery code: %v", err)
	}
	sameRecovery := &models.Auction{
		ID: uuid.New(), Name: "copycat", Status: models.AuctionStatusDraft,
		JoinCode: "OTHER7", RecoveryCode: "recovery-recovery-20",
		CreatedAt: time.Now(), ModifiedAt: time.Now(),
	}
	if err := s.Auctions().Create(ctx, sameRecovery); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict for duplicate recovery code", err)
	}
}

func TestGetByDisplayNameIsCaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()
	auc := seedAuction(t, s)

	u := &models.User{ID: uuid.New(), AuctionID: auc.ID, DisplayName: "Alice", CreatedAt: time.Now()}
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	got, err := s.Users().GetByDisplayName(ctx, auc.ID, "aLiCe")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != u.ID {
		t.Error("case-insensitive lookup returned the wrong user")
	}

	if _, err := s.Users().GetByDisplayName(ctx, auc.ID, "bob"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
