package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

type auctionRepo struct{ r runner }

func (r auctionRepo) Create(_ context.Context, a *models.Auction) error {
	return r.r.run(func(d *data) error {
		for _, existing := range d.auctions {
			if strings.EqualFold(existing.JoinCode, a.JoinCode) {
				return store.ErrConflict
			}
			if a.RecoveryCode != "" && existing.RecoveryCode == a.RecoveryCode {
				return store.ErrConflict
			}
		}
		d.auctions[a.ID] = cloneAuction(*a)
		return nil
	})
}

func (r auctionRepo) Get(_ context.Context, id uuid.UUID) (*models.Auction, error) {
	var out *models.Auction
	err := r.r.run(func(d *data) error {
		a, ok := d.auctions[id]
		if !ok {
			return store.ErrNotFound
		}
		c := cloneAuction(a)
		out = &c
		return nil
	})
	return out, err
}

func (r auctionRepo) GetByJoinCode(_ context.Context, code string) (*models.Auction, error) {
	var out *models.Auction
	err := r.r.run(func(d *data) error {
		for _, a := range d.auctions {
			if strings.EqualFold(a.JoinCode, code) {
				c := cloneAuction(a)
				out = &c
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (r auctionRepo) GetByRecoveryCode(_ context.Context, code string) (*models.Auction, error) {
	var out *models.Auction
	err := r.r.run(func(d *data) error {
		for _, a := range d.auctions {
			if a.RecoveryCode == code {
				c := cloneAuction(a)
				out = &c
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

// GetForUpdate is a plain read here: the store mutex already serializes the
// enclosing transaction.
func (r auctionRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	return r.Get(ctx, id)
}

func (r auctionRepo) Update(_ context.Context, a *models.Auction) error {
	return r.r.run(func(d *data) error {
		if _, ok := d.auctions[a.ID]; !ok {
			return store.ErrNotFound
		}
		d.auctions[a.ID] = cloneAuction(*a)
		return nil
	})
}

type teamRepo struct{ r runner }

func (r teamRepo) Create(_ context.Context, t *models.Team) error {
	return r.r.run(func(d *data) error {
		d.teams[t.ID] = *t
		return nil
	})
}

func (r teamRepo) Get(_ context.Context, id uuid.UUID) (*models.Team, error) {
	var out *models.Team
	err := r.r.run(func(d *data) error {
		t, ok := d.teams[id]
		if !ok {
			return store.ErrNotFound
		}
		out = &t
		return nil
	})
	return out, err
}

func (r teamRepo) ListByAuction(_ context.Context, auctionID uuid.UUID) ([]models.Team, error) {
	var out []models.Team
	err := r.r.run(func(d *data) error {
		for _, t := range d.teams {
			if t.AuctionID == auctionID {
				out = append(out, t)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r teamRepo) UpdateRemainingBudget(_ context.Context, id uuid.UUID, remaining int) error {
	return r.r.run(func(d *data) error {
		t, ok := d.teams[id]
		if !ok {
			return store.ErrNotFound
		}
		t.RemainingBudget = remaining
		d.teams[id] = t
		return nil
	})
}

type userRepo struct{ r runner }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	return r.r.run(func(d *data) error {
		for _, existing := range d.users {
			if existing.AuctionID == u.AuctionID && strings.EqualFold(existing.DisplayName, u.DisplayName) {
				return store.ErrConflict
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r userRepo) Get(_ context.Context, id uuid.UUID) (*models.User, error) {
	var out *models.User
	err := r.r.run(func(d *data) error {
		u, ok := d.users[id]
		if !ok {
			return store.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r userRepo) GetByDisplayName(_ context.Context, auctionID uuid.UUID, name string) (*models.User, error) {
	var out *models.User
	err := r.r.run(func(d *data) error {
		for _, u := range d.users {
			if u.AuctionID == auctionID && strings.EqualFold(u.DisplayName, name) {
				c := u
				out = &c
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (r userRepo) ListByAuction(_ context.Context, auctionID uuid.UUID) ([]models.User, error) {
	var out []models.User
	err := r.r.run(func(d *data) error {
		for _, u := range d.users {
			if u.AuctionID == auctionID {
				out = append(out, u)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r userRepo) Update(_ context.Context, u *models.User) error {
	return r.r.run(func(d *data) error {
		if _, ok := d.users[u.ID]; !ok {
			return store.ErrNotFound
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r userRepo) ResetPracticeFlags(_ context.Context, auctionID uuid.UUID, clearTested bool) error {
	return r.r.run(func(d *data) error {
		for id, u := range d.users {
			if u.AuctionID == auctionID {
				u.HasPassedOnTestBid = false
				if clearTested {
					u.HasTestedBidding = false
				}
				d.users[id] = u
			}
		}
		return nil
	})
}

type roleRepo struct{ r runner }

func (r roleRepo) Create(_ context.Context, ur *models.UserRole) error {
	return r.r.run(func(d *data) error {
		d.roles = append(d.roles, *ur)
		return nil
	})
}

func (r roleRepo) ListByUser(_ context.Context, auctionID, userID uuid.UUID) ([]models.UserRole, error) {
	var out []models.UserRole
	err := r.r.run(func(d *data) error {
		for _, ur := range d.roles {
			if ur.AuctionID == auctionID && ur.UserID == userID {
				out = append(out, ur)
			}
		}
		return nil
	})
	return out, err
}

type bidRepo struct{ r runner }

func (r bidRepo) Append(_ context.Context, b *models.BidHistory) error {
	return r.r.run(func(d *data) error {
		d.bids = append(d.bids, cloneBid(*b))
		return nil
	})
}

func (r bidRepo) MarkWinning(_ context.Context, id uuid.UUID) error {
	return r.r.run(func(d *data) error {
		for i := range d.bids {
			if d.bids[i].ID == id {
				d.bids[i].IsWinningBid = true
				return nil
			}
		}
		return store.ErrNotFound
	})
}

func (r bidRepo) ListByAuction(_ context.Context, auctionID uuid.UUID) ([]models.BidHistory, error) {
	var out []models.BidHistory
	err := r.r.run(func(d *data) error {
		for _, b := range d.bids {
			if b.AuctionID == auctionID {
				out = append(out, cloneBid(b))
			}
		}
		return nil
	})
	return out, err
}

func (r bidRepo) FindLive(_ context.Context, auctionID, schoolID, userID uuid.UUID, amount int) (*models.BidHistory, error) {
	var out *models.BidHistory
	err := r.r.run(func(d *data) error {
		// Latest matching row wins.
		for i := len(d.bids) - 1; i >= 0; i-- {
			b := d.bids[i]
			if b.AuctionID == auctionID && b.BidType == models.BidTypeLive &&
				b.SchoolID != nil && *b.SchoolID == schoolID &&
				b.UserID == userID && b.Amount == amount {
				c := cloneBid(b)
				out = &c
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (r bidRepo) HighestByTag(_ context.Context, auctionID uuid.UUID, tag string) (*models.BidHistory, error) {
	var out *models.BidHistory
	err := r.r.run(func(d *data) error {
		for i := range d.bids {
			b := d.bids[i]
			if b.AuctionID != auctionID || b.BidType != models.BidTypeTest || b.Tag != tag {
				continue
			}
			if out == nil || b.Amount > out.Amount {
				c := cloneBid(b)
				out = &c
			}
		}
		return nil
	})
	return out, err
}

func (r bidRepo) DeleteTestBids(_ context.Context, auctionID uuid.UUID) error {
	return r.r.run(func(d *data) error {
		kept := d.bids[:0]
		for _, b := range d.bids {
			if b.AuctionID == auctionID && b.BidType == models.BidTypeTest {
				continue
			}
			kept = append(kept, b)
		}
		d.bids = kept
		return nil
	})
}

type nominationRepo struct{ r runner }

func (r nominationRepo) Create(_ context.Context, n *models.NominationOrder) error {
	return r.r.run(func(d *data) error {
		d.noms = append(d.noms, *n)
		return nil
	})
}

func (r nominationRepo) ListByAuction(_ context.Context, auctionID uuid.UUID) ([]models.NominationOrder, error) {
	var out []models.NominationOrder
	err := r.r.run(func(d *data) error {
		for _, n := range d.noms {
			if n.AuctionID == auctionID {
				out = append(out, n)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
		return nil
	})
	return out, err
}

func (r nominationRepo) Update(_ context.Context, n *models.NominationOrder) error {
	return r.r.run(func(d *data) error {
		for i := range d.noms {
			if d.noms[i].ID == n.ID {
				d.noms[i] = *n
				return nil
			}
		}
		return store.ErrNotFound
	})
}

func (r nominationRepo) ResetHasNominated(_ context.Context, auctionID uuid.UUID) error {
	return r.r.run(func(d *data) error {
		for i := range d.noms {
			if d.noms[i].AuctionID == auctionID {
				d.noms[i].HasNominated = false
			}
		}
		return nil
	})
}

type positionRepo struct{ r runner }

func (r positionRepo) Create(_ context.Context, p *models.RosterPosition) error {
	return r.r.run(func(d *data) error {
		d.positions[p.ID] = *p
		return nil
	})
}

func (r positionRepo) Get(_ context.Context, id uuid.UUID) (*models.RosterPosition, error) {
	var out *models.RosterPosition
	err := r.r.run(func(d *data) error {
		p, ok := d.positions[id]
		if !ok {
			return store.ErrNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r positionRepo) ListByAuction(_ context.Context, auctionID uuid.UUID) ([]models.RosterPosition, error) {
	var out []models.RosterPosition
	err := r.r.run(func(d *data) error {
		for _, p := range d.positions {
			if p.AuctionID == auctionID {
				out = append(out, p)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
		return nil
	})
	return out, err
}

type pickRepo struct{ r runner }

func (r pickRepo) Create(_ context.Context, p *models.DraftPick) error {
	return r.r.run(func(d *data) error {
		d.picks[p.ID] = clonePick(*p)
		return nil
	})
}

func (r pickRepo) Get(_ context.Context, id uuid.UUID) (*models.DraftPick, error) {
	var out *models.DraftPick
	err := r.r.run(func(d *data) error {
		p, ok := d.picks[id]
		if !ok {
			return store.ErrNotFound
		}
		c := clonePick(p)
		out = &c
		return nil
	})
	return out, err
}

func (r pickRepo) ListByAuction(_ context.Context, auctionID uuid.UUID) ([]models.DraftPick, error) {
	var out []models.DraftPick
	err := r.r.run(func(d *data) error {
		for _, p := range d.picks {
			if p.AuctionID == auctionID {
				out = append(out, clonePick(p))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].PickOrder < out[j].PickOrder })
		return nil
	})
	return out, err
}

func (r pickRepo) ListByTeam(_ context.Context, teamID uuid.UUID) ([]models.DraftPick, error) {
	var out []models.DraftPick
	err := r.r.run(func(d *data) error {
		for _, p := range d.picks {
			if p.TeamID == teamID {
				out = append(out, clonePick(p))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].PickOrder < out[j].PickOrder })
		return nil
	})
	return out, err
}

func (r pickRepo) Update(_ context.Context, p *models.DraftPick) error {
	return r.r.run(func(d *data) error {
		if _, ok := d.picks[p.ID]; !ok {
			return store.ErrNotFound
		}
		d.picks[p.ID] = clonePick(*p)
		return nil
	})
}

func (r pickRepo) NextPickOrder(_ context.Context, auctionID uuid.UUID) (int, error) {
	max := 0
	err := r.r.run(func(d *data) error {
		for _, p := range d.picks {
			if p.AuctionID == auctionID && p.PickOrder > max {
				max = p.PickOrder
			}
		}
		return nil
	})
	return max + 1, err
}

func (r pickRepo) CountAssigned(_ context.Context, auctionID uuid.UUID) (int, error) {
	n := 0
	err := r.r.run(func(d *data) error {
		for _, p := range d.picks {
			if p.AuctionID == auctionID && p.AssignmentConfirmed && p.RosterPositionID != nil {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r pickRepo) CountByTeamAndPosition(_ context.Context, teamID, positionID, excludePickID uuid.UUID) (int, error) {
	n := 0
	err := r.r.run(func(d *data) error {
		for _, p := range d.picks {
			if p.ID == excludePickID {
				continue
			}
			if p.TeamID == teamID && p.RosterPositionID != nil && *p.RosterPositionID == positionID {
				n++
			}
		}
		return nil
	})
	return n, err
}

type schoolRepo struct{ r runner }

func (r schoolRepo) Create(_ context.Context, s *models.School) error {
	return r.r.run(func(d *data) error {
		d.schools[s.ID] = *s
		return nil
	})
}

func (r schoolRepo) Get(_ context.Context, id uuid.UUID) (*models.School, error) {
	var out *models.School
	err := r.r.run(func(d *data) error {
		s, ok := d.schools[id]
		if !ok {
			return store.ErrNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r schoolRepo) ListByAuction(_ context.Context, auctionID uuid.UUID) ([]models.School, error) {
	var out []models.School
	err := r.r.run(func(d *data) error {
		for _, s := range d.schools {
			if s.AuctionID == auctionID {
				out = append(out, s)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}
