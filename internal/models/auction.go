package models

import (
	"time"

	"github.com/google/uuid"
)

// AuctionStatus defines the lifecycle state of an auction.
type AuctionStatus string

const (
	AuctionStatusDraft      AuctionStatus = "DRAFT"
	AuctionStatusInProgress AuctionStatus = "IN_PROGRESS"
	AuctionStatusPaused     AuctionStatus = "PAUSED"
	AuctionStatusComplete   AuctionStatus = "COMPLETE"
	AuctionStatusArchived   AuctionStatus = "ARCHIVED"
)

// legalTransitions is the closed transition table. COMPLETE is reachable from
// any state (admin override); nothing transitions back into DRAFT.
var legalTransitions = map[AuctionStatus][]AuctionStatus{
	AuctionStatusDraft:      {AuctionStatusInProgress, AuctionStatusComplete},
	AuctionStatusInProgress: {AuctionStatusPaused, AuctionStatusComplete},
	AuctionStatusPaused:     {AuctionStatusInProgress, AuctionStatusComplete},
	AuctionStatusComplete:   {AuctionStatusArchived, AuctionStatusComplete},
	AuctionStatusArchived:   {AuctionStatusComplete},
}

// CanTransition reports whether moving from one status to another is legal.
func (s AuctionStatus) CanTransition(to AuctionStatus) bool {
	for _, next := range legalTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Valid reports whether the status is a member of the closed enum.
func (s AuctionStatus) Valid() bool {
	switch s {
	case AuctionStatusDraft, AuctionStatusInProgress, AuctionStatusPaused,
		AuctionStatusComplete, AuctionStatusArchived:
		return true
	}
	return false
}

// Auction is the aggregate root for a single draft event. The three
// CurrentHighBid/CurrentHighBidder/CurrentSchoolID fields are either all nil
// or all set together.
type Auction struct {
	ID                  uuid.UUID     `json:"id" db:"id"`
	Name                string        `json:"name" db:"name"`
	Status              AuctionStatus `json:"status" db:"status"`
	JoinCode            string        `json:"join_code" db:"join_code"`
	RecoveryCode        string        `json:"-" db:"recovery_code"`
	CreatorID           *uuid.UUID    `json:"creator_id,omitempty" db:"creator_id"`
	CurrentNominatorID  *uuid.UUID    `json:"current_nominator_id,omitempty" db:"current_nominator_id"`
	CurrentSchoolID     *uuid.UUID    `json:"current_school_id,omitempty" db:"current_school_id"`
	CurrentHighBid      *int          `json:"current_high_bid,omitempty" db:"current_high_bid"`
	CurrentHighBidderID *uuid.UUID    `json:"current_high_bidder_id,omitempty" db:"current_high_bidder_id"`
	PracticeSchoolIndex int           `json:"practice_school_index" db:"practice_school_index"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	StartedAt           *time.Time    `json:"started_at,omitempty" db:"started_at"`
	CompletedAt         *time.Time    `json:"completed_at,omitempty" db:"completed_at"`
	ModifiedAt          time.Time     `json:"modified_at" db:"modified_at"`
}

// HasActiveBidding reports whether a school is currently under the hammer.
func (a *Auction) HasActiveBidding() bool {
	return a.CurrentSchoolID != nil && a.CurrentHighBid != nil && a.CurrentHighBidderID != nil
}

// ClearCurrentBid resets the live-bidding fields together, preserving the
// all-nil-or-all-set invariant.
func (a *Auction) ClearCurrentBid() {
	a.CurrentSchoolID = nil
	a.CurrentHighBid = nil
	a.CurrentHighBidderID = nil
}
