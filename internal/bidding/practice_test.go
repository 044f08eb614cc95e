package bidding

import (
	"errors"
	"testing"
)

func TestPracticeBidFlow(t *testing.T) {
	f := newFixture(t)
	a := f.addParticipant(t, "alice", 100)
	b := f.addParticipant(t, "bob", 100)

	if _, err := f.app.PlacePracticeBid(f.ctx, f.auc.ID, a.user.ID, 5); err != nil {
		t.Fatalf("alice's practice bid: %v", err)
	}

	// Must strictly beat the current high, live rules apply.
	if _, err := f.app.PlacePracticeBid(f.ctx, f.auc.ID, b.user.ID, 5); !errors.Is(err, ErrBidTooLow) {
		t.Fatalf("got %v, want ErrBidTooLow", err)
	}
	if _, err := f.app.PlacePracticeBid(f.ctx, f.auc.ID, b.user.ID, 8); err != nil {
		t.Fatalf("bob's practice bid: %v", err)
	}

	// Budgets never move for practice bids.
	team, _ := f.store.Teams().Get(f.ctx, a.team.ID)
	if team.RemainingBudget != 100 {
		t.Errorf("practice bid touched a budget: %d", team.RemainingBudget)
	}

	// First practice bid marks the user as having tested.
	alice, _ := f.store.Users().Get(f.ctx, a.user.ID)
	if !alice.HasTestedBidding {
		t.Error("alice's has-tested flag not set")
	}

	state, err := f.app.PracticeState(f.ctx, f.auc.ID)
	if err != nil {
		t.Fatalf("practice state: %v", err)
	}
	if state.HighBid == nil || *state.HighBid != 8 || *state.HighBidderID != b.user.ID {
		t.Errorf("unexpected practice state: %+v", state)
	}
}

func TestPracticePassIsIrrevocable(t *testing.T) {
	f := newFixture(t)
	a := f.addParticipant(t, "alice", 100)

	if err := f.app.PassPractice(f.ctx, f.auc.ID, a.user.ID); err != nil {
		t.Fatalf("passing: %v", err)
	}
	if _, err := f.app.PlacePracticeBid(f.ctx, f.auc.ID, a.user.ID, 5); !errors.Is(err, ErrAlreadyPassed) {
		t.Fatalf("got %v, want ErrAlreadyPassed", err)
	}
	if err := f.app.PassPractice(f.ctx, f.auc.ID, a.user.ID); !errors.Is(err, ErrAlreadyPassed) {
		t.Fatalf("double pass: got %v, want ErrAlreadyPassed", err)
	}
}

func TestCompletePracticeRoundCyclesSchools(t *testing.T) {
	f := newFixture(t)
	a := f.addParticipant(t, "alice", 100)

	first, err := f.app.PracticeState(f.ctx, f.auc.ID)
	if err != nil {
		t.Fatalf("practice state: %v", err)
	}

	// Completing five rounds wraps back to the first virtual school.
	seen := map[string]bool{first.SchoolName: true}
	for i := 0; i < 5; i++ {
		if err := f.app.PassPractice(f.ctx, f.auc.ID, a.user.ID); err != nil {
			t.Fatalf("round %d pass: %v", i, err)
		}
		next, err := f.app.CompletePracticeRound(f.ctx, f.auc.ID)
		if err != nil {
			t.Fatalf("round %d complete: %v", i, err)
		}
		seen[next] = true

		// Pass flag resets each round, so the next pass succeeds.
		alice, _ := f.store.Users().Get(f.ctx, a.user.ID)
		if alice.HasPassedOnTestBid {
			t.Fatalf("round %d did not reset the pass flag", i)
		}
	}
	if len(seen) != 5 {
		t.Errorf("cycled through %d distinct schools, want 5", len(seen))
	}

	state, _ := f.app.PracticeState(f.ctx, f.auc.ID)
	if state.SchoolName != first.SchoolName {
		t.Error("five completions did not wrap to the first school")
	}
}

func TestCompletePracticeRoundFlagsHighBid(t *testing.T) {
	f := newFixture(t)
	a := f.addParticipant(t, "alice", 100)
	b := f.addParticipant(t, "bob", 100)

	if _, err := f.app.PlacePracticeBid(f.ctx, f.auc.ID, a.user.ID, 5); err != nil {
		t.Fatalf("alice's bid: %v", err)
	}
	if _, err := f.app.PlacePracticeBid(f.ctx, f.auc.ID, b.user.ID, 9); err != nil {
		t.Fatalf("bob's bid: %v", err)
	}
	if _, err := f.app.CompletePracticeRound(f.ctx, f.auc.ID); err != nil {
		t.Fatalf("completing round: %v", err)
	}

	bids, _ := f.store.Bids().ListByAuction(f.ctx, f.auc.ID)
	var winners int
	for _, bid := range bids {
		if bid.IsWinningBid {
			winners++
			if bid.Amount != 9 {
				t.Errorf("winning practice bid amount = %d, want 9", bid.Amount)
			}
		}
	}
	if winners != 1 {
		t.Errorf("got %d winning practice rows, want 1", winners)
	}
}

func TestResetPracticeBids(t *testing.T) {
	f := newFixture(t)
	a := f.addParticipant(t, "alice", 100)

	if _, err := f.app.PlacePracticeBid(f.ctx, f.auc.ID, a.user.ID, 5); err != nil {
		t.Fatalf("practice bid: %v", err)
	}
	if err := f.app.ResetPracticeBids(f.ctx, f.auc.ID); err != nil {
		t.Fatalf("resetting: %v", err)
	}

	bids, _ := f.store.Bids().ListByAuction(f.ctx, f.auc.ID)
	if len(bids) != 0 {
		t.Errorf("%d practice rows survived the reset", len(bids))
	}
	alice, _ := f.store.Users().Get(f.ctx, a.user.ID)
	if alice.HasTestedBidding || alice.HasPassedOnTestBid {
		t.Error("practice flags survived the reset")
	}

	// Live rows survive a practice reset.
	if _, err := f.app.PlaceBid(f.ctx, f.auc.ID, a.user.ID, f.school.ID, 10); err != nil {
		t.Fatalf("live bid: %v", err)
	}
	if err := f.app.ResetPracticeBids(f.ctx, f.auc.ID); err != nil {
		t.Fatalf("second reset: %v", err)
	}
	bids, _ = f.store.Bids().ListByAuction(f.ctx, f.auc.ID)
	if len(bids) != 1 {
		t.Errorf("live ledger row did not survive practice reset: %d rows", len(bids))
	}
}
