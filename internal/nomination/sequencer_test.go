package nomination

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store/memstore"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Broadcast(_ context.Context, _ uuid.UUID, eventType string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
	return nil
}

func setup(t *testing.T, userNames ...string) (*App, *memstore.Store, *models.Auction, []uuid.UUID) {
	t.Helper()
	st := memstore.New()
	app := NewApp(st, &recorder{}, zerolog.Nop())
	ctx := context.Background()

	auc := &models.Auction{
		ID:         uuid.New(),
		Name:       "test draft",
		Status:     models.AuctionStatusInProgress,
		JoinCode:   "XYZ789",
		CreatedAt:  time.Now(),
		ModifiedAt: time.Now(),
	}
	if err := st.Auctions().Create(ctx, auc); err != nil {
		t.Fatalf("creating auction: %v", err)
	}

	var userIDs []uuid.UUID
	for _, name := range userNames {
		u := &models.User{ID: uuid.New(), AuctionID: auc.ID, DisplayName: name, CreatedAt: time.Now()}
		if err := st.Users().Create(ctx, u); err != nil {
			t.Fatalf("creating user: %v", err)
		}
		if _, err := app.Append(ctx, auc.ID, u.ID); err != nil {
			t.Fatalf("appending %s: %v", name, err)
		}
		userIDs = append(userIDs, u.ID)
	}
	return app, st, auc, userIDs
}

func TestAppendAssignsSequentialPositions(t *testing.T) {
	app, _, auc, _ := setup(t, "a", "b", "c")

	entries, err := app.List(context.Background(), auc.ID)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Position != i+1 {
			t.Errorf("entry %d has position %d, want %d", i, e.Position, i+1)
		}
	}
}

func TestAdvanceTurnRotates(t *testing.T) {
	app, _, auc, users := setup(t, "a", "b", "c")
	ctx := context.Background()

	for i, want := range []uuid.UUID{users[0], users[1], users[2]} {
		next, err := app.AdvanceTurn(ctx, auc.ID)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if next == nil || *next != want {
			t.Fatalf("advance %d selected wrong nominator", i)
		}
	}

	// Fourth advance wraps into a new round back to the first user.
	next, err := app.AdvanceTurn(ctx, auc.ID)
	if err != nil {
		t.Fatalf("wrapping advance: %v", err)
	}
	if next == nil || *next != users[0] {
		t.Error("round did not restart from the first entry")
	}
}

func TestAdvanceTurnSkipsMarkedUsers(t *testing.T) {
	app, _, auc, users := setup(t, "a", "b", "c")
	ctx := context.Background()

	if err := app.SetSkipped(ctx, auc.ID, users[1], true); err != nil {
		t.Fatalf("skipping b: %v", err)
	}

	first, _ := app.AdvanceTurn(ctx, auc.ID)
	second, _ := app.AdvanceTurn(ctx, auc.ID)
	if *first != users[0] || *second != users[2] {
		t.Error("skipped user was selected as nominator")
	}
}

func TestAdvanceTurnAllSkipped(t *testing.T) {
	app, st, auc, users := setup(t, "a", "b")
	ctx := context.Background()

	for _, id := range users {
		if err := app.SetSkipped(ctx, auc.ID, id, true); err != nil {
			t.Fatalf("skipping: %v", err)
		}
	}

	next, err := app.AdvanceTurn(ctx, auc.ID)
	if err != nil {
		t.Fatalf("advance with all skipped: %v", err)
	}
	if next != nil {
		t.Error("expected nil nominator when everyone is skipped")
	}

	got, _ := st.Auctions().Get(ctx, auc.ID)
	if got.CurrentNominatorID != nil {
		t.Error("auction retained a nominator with everyone skipped")
	}
}

func TestUnskipBetweenRoundsRejoinsNextRound(t *testing.T) {
	app, _, auc, users := setup(t, "a", "b", "c")
	ctx := context.Background()

	if err := app.SetSkipped(ctx, auc.ID, users[2], true); err != nil {
		t.Fatalf("skipping c: %v", err)
	}

	// Round one runs with only a and b, then wraps into round two.
	for i, want := range []uuid.UUID{users[0], users[1], users[0]} {
		next, err := app.AdvanceTurn(ctx, auc.ID)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if next == nil || *next != want {
			t.Fatalf("advance %d selected wrong nominator", i)
		}
	}

	// Un-skipped between rounds, c takes its slot in the new round.
	if err := app.SetSkipped(ctx, auc.ID, users[2], false); err != nil {
		t.Fatalf("unskipping c: %v", err)
	}
	second, err := app.AdvanceTurn(ctx, auc.ID)
	if err != nil {
		t.Fatalf("advance after unskip: %v", err)
	}
	if second == nil || *second != users[1] {
		t.Fatal("round two did not continue with b")
	}
	third, err := app.AdvanceTurn(ctx, auc.ID)
	if err != nil {
		t.Fatalf("final advance: %v", err)
	}
	if third == nil || *third != users[2] {
		t.Error("un-skipped user was not selected in the new round")
	}
}

func TestSkipRestoredUserRejoinsRotation(t *testing.T) {
	app, _, auc, users := setup(t, "a", "b")
	ctx := context.Background()

	if err := app.SetSkipped(ctx, auc.ID, users[1], true); err != nil {
		t.Fatalf("skipping b: %v", err)
	}
	if _, err := app.AdvanceTurn(ctx, auc.ID); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := app.SetSkipped(ctx, auc.ID, users[1], false); err != nil {
		t.Fatalf("unskipping b: %v", err)
	}

	next, err := app.AdvanceTurn(ctx, auc.ID)
	if err != nil {
		t.Fatalf("advance after unskip: %v", err)
	}
	if next == nil || *next != users[1] {
		t.Error("unskipped user did not rejoin the rotation")
	}
}
