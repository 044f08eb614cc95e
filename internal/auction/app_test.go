package auction

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
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

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func newTestApp(t *testing.T) (*App, *memstore.Store, *recorder, *clockwork.FakeClock) {
	t.Helper()
	st := memstore.New()
	rec := &recorder{}
	clock := clockwork.NewFakeClock()
	return NewApp(st, rec, clock, zerolog.Nop()), st, rec, clock
}

func TestCreateAuction(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	ctx := context.Background()

	auc, err := app.CreateAuction(ctx, "friday draft", nil)
	if err != nil {
		t.Fatalf("creating auction: %v", err)
	}
	if auc.Status != models.AuctionStatusDraft {
		t.Errorf("new auction status = %s, want DRAFT", auc.Status)
	}
	if len(auc.JoinCode) != 6 {
		t.Errorf("join code %q is not 6 characters", auc.JoinCode)
	}
	if len(auc.RecoveryCode) != 20 {
		t.Errorf("recovery code is %d characters, want 20", len(auc.RecoveryCode))
	}

	// Codes are unique across auctions.
	other, err := app.CreateAuction(ctx, "saturday draft", nil)
	if err != nil {
		t.Fatalf("creating second auction: %v", err)
	}
	if other.JoinCode == auc.JoinCode {
		t.Error("two auctions share a join code")
	}
	if other.RecoveryCode == auc.RecoveryCode {
		t.Error("two auctions share a recovery code")
	}
}

func TestRecoverAuctionByCode(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	ctx := context.Background()
	auc, err := app.CreateAuction(ctx, "friday draft", nil)
	if err != nil {
		t.Fatalf("creating auction: %v", err)
	}

	got, err := app.RecoverByCode(ctx, auc.RecoveryCode)
	if err != nil {
		t.Fatalf("recovering: %v", err)
	}
	if got.ID != auc.ID {
		t.Error("recovery code resolved the wrong auction")
	}

	if _, err := app.RecoverByCode(ctx, "not-a-real-code"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, err := app.RecoverByCode(ctx, ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v for empty code, want ErrNotFound", err)
	}
}

func TestCreateAuctionRequiresName(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	if _, err := app.CreateAuction(context.Background(), "", nil); err == nil {
		t.Fatal("expected an error for an empty name")
	}
}

func TestSetStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []models.AuctionStatus
		wantErr bool
	}{
		{"full lifecycle", []models.AuctionStatus{
			models.AuctionStatusInProgress, models.AuctionStatusPaused,
			models.AuctionStatusInProgress, models.AuctionStatusComplete,
			models.AuctionStatusArchived,
		}, false},
		{"draft cannot pause", []models.AuctionStatus{models.AuctionStatusPaused}, true},
		{"cannot reenter draft", []models.AuctionStatus{
			models.AuctionStatusInProgress, models.AuctionStatusDraft,
		}, true},
		{"admin override to complete", []models.AuctionStatus{models.AuctionStatusComplete}, false},
		{"unarchive", []models.AuctionStatus{
			models.AuctionStatusComplete, models.AuctionStatusArchived, models.AuctionStatusComplete,
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _, _ := newTestApp(t)
			ctx := context.Background()
			auc, err := app.CreateAuction(ctx, "t", nil)
			if err != nil {
				t.Fatalf("creating auction: %v", err)
			}

			var lastErr error
			for _, status := range tt.path {
				if _, lastErr = app.SetStatus(ctx, auc.ID, status); lastErr != nil {
					break
				}
			}
			if tt.wantErr {
				if !errors.Is(lastErr, ErrInvalidTransition) {
					t.Fatalf("got %v, want ErrInvalidTransition", lastErr)
				}
			} else if lastErr != nil {
				t.Fatalf("unexpected error: %v", lastErr)
			}
		})
	}
}

func TestSetStatusStampsTimes(t *testing.T) {
	app, st, _, clock := newTestApp(t)
	ctx := context.Background()
	auc, _ := app.CreateAuction(ctx, "t", nil)

	if _, err := app.SetStatus(ctx, auc.ID, models.AuctionStatusInProgress); err != nil {
		t.Fatalf("starting: %v", err)
	}
	got, _ := st.Auctions().Get(ctx, auc.ID)
	if got.StartedAt == nil || !got.StartedAt.Equal(clock.Now().UTC()) {
		t.Error("StartedAt not stamped on first start")
	}
	started := *got.StartedAt

	// Pausing and resuming does not restamp the start time.
	if _, err := app.SetStatus(ctx, auc.ID, models.AuctionStatusPaused); err != nil {
		t.Fatalf("pausing: %v", err)
	}
	if _, err := app.SetStatus(ctx, auc.ID, models.AuctionStatusInProgress); err != nil {
		t.Fatalf("resuming: %v", err)
	}
	got, _ = st.Auctions().Get(ctx, auc.ID)
	if !got.StartedAt.Equal(started) {
		t.Error("resume restamped StartedAt")
	}

	if _, err := app.SetStatus(ctx, auc.ID, models.AuctionStatusComplete); err != nil {
		t.Fatalf("completing: %v", err)
	}
	got, _ = st.Auctions().Get(ctx, auc.ID)
	if got.CompletedAt == nil {
		t.Error("CompletedAt not stamped")
	}
}

func TestJoinAuction(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	ctx := context.Background()
	auc, _ := app.CreateAuction(ctx, "t", nil)

	user, joined, err := app.JoinAuction(ctx, auc.JoinCode, "Alice")
	if err != nil {
		t.Fatalf("joining: %v", err)
	}
	if joined.ID != auc.ID || user.DisplayName != "Alice" {
		t.Error("join returned the wrong auction or user")
	}

	// Display names are unique per auction, case-insensitively.
	if _, _, err := app.JoinAuction(ctx, auc.JoinCode, "ALICE"); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("got %v, want ErrNameTaken", err)
	}

	// The same name is fine in a different auction.
	other, _ := app.CreateAuction(ctx, "other", nil)
	if _, _, err := app.JoinAuction(ctx, other.JoinCode, "alice"); err != nil {
		t.Fatalf("joining other auction: %v", err)
	}
}

func TestSetReadyBroadcasts(t *testing.T) {
	app, _, rec, _ := newTestApp(t)
	ctx := context.Background()
	auc, _ := app.CreateAuction(ctx, "t", nil)
	user, _, err := app.JoinAuction(ctx, auc.JoinCode, "alice")
	if err != nil {
		t.Fatalf("joining: %v", err)
	}

	if err := app.SetReady(ctx, auc.ID, user.ID, true); err != nil {
		t.Fatalf("setting ready: %v", err)
	}

	found := false
	for _, ev := range rec.types() {
		if ev == "ReadinessUpdated" {
			found = true
		}
	}
	if !found {
		t.Error("ReadinessUpdated was not broadcast")
	}
}

func TestCreateTeamLinksCoach(t *testing.T) {
	app, st, _, _ := newTestApp(t)
	ctx := context.Background()
	auc, _ := app.CreateAuction(ctx, "t", nil)
	user, _, err := app.JoinAuction(ctx, auc.JoinCode, "alice")
	if err != nil {
		t.Fatalf("joining: %v", err)
	}

	team, err := app.CreateTeam(ctx, auc.ID, user.ID, "alpha", 200)
	if err != nil {
		t.Fatalf("creating team: %v", err)
	}
	if team.RemainingBudget != 200 {
		t.Errorf("remaining budget = %d, want the full budget", team.RemainingBudget)
	}

	roles, err := st.Roles().ListByUser(ctx, auc.ID, user.ID)
	if err != nil {
		t.Fatalf("listing roles: %v", err)
	}
	if len(roles) != 1 || roles[0].Role != models.RoleTeamCoach || roles[0].TeamID != team.ID {
		t.Errorf("unexpected roles: %+v", roles)
	}
}
