package memstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
)

// Deep-copy helpers. Entities are stored by value, but several carry pointer
// fields that must not be shared between the live dataset and a snapshot.

func cloneUUIDPtr(p *uuid.UUID) *uuid.UUID {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneAuction(a models.Auction) models.Auction {
	a.CreatorID = cloneUUIDPtr(a.CreatorID)
	a.CurrentNominatorID = cloneUUIDPtr(a.CurrentNominatorID)
	a.CurrentSchoolID = cloneUUIDPtr(a.CurrentSchoolID)
	a.CurrentHighBid = cloneIntPtr(a.CurrentHighBid)
	a.CurrentHighBidderID = cloneUUIDPtr(a.CurrentHighBidderID)
	a.StartedAt = cloneTimePtr(a.StartedAt)
	a.CompletedAt = cloneTimePtr(a.CompletedAt)
	return a
}

func cloneBid(b models.BidHistory) models.BidHistory {
	b.SchoolID = cloneUUIDPtr(b.SchoolID)
	return b
}

func clonePick(p models.DraftPick) models.DraftPick {
	p.RosterPositionID = cloneUUIDPtr(p.RosterPositionID)
	p.NominatorUserID = cloneUUIDPtr(p.NominatorUserID)
	return p
}

func (d *data) clone() *data {
	c := newData()
	for id, a := range d.auctions {
		c.auctions[id] = cloneAuction(a)
	}
	for id, t := range d.teams {
		c.teams[id] = t
	}
	for id, u := range d.users {
		c.users[id] = u
	}
	c.roles = append([]models.UserRole(nil), d.roles...)
	c.bids = make([]models.BidHistory, len(d.bids))
	for i, b := range d.bids {
		c.bids[i] = cloneBid(b)
	}
	c.noms = append([]models.NominationOrder(nil), d.noms...)
	for id, p := range d.positions {
		c.positions[id] = p
	}
	for id, p := range d.picks {
		c.picks[id] = clonePick(p)
	}
	for id, s := range d.schools {
		c.schools[id] = s
	}
	return c
}
