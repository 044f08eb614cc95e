package models

import (
	"time"

	"github.com/google/uuid"
)

// BidType distinguishes live draft bids from practice (test) bids.
type BidType string

const (
	BidTypeLive BidType = "LIVE"
	BidTypeTest BidType = "TEST"
)

// BidHistory is one append-only ledger row. SchoolID is nil for practice bids,
// which are scoped by Tag instead. Settlement flips IsWinningBid on exactly
// one prior row; rows are never deleted outside ResetPracticeBids.
type BidHistory struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	AuctionID    uuid.UUID  `json:"auction_id" db:"auction_id"`
	SchoolID     *uuid.UUID `json:"school_id,omitempty" db:"school_id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	Amount       int        `json:"amount" db:"amount"`
	BidType      BidType    `json:"bid_type" db:"bid_type"`
	IsWinningBid bool       `json:"is_winning_bid" db:"is_winning_bid"`
	Tag          string     `json:"tag" db:"tag"`
	PlacedAt     time.Time  `json:"placed_at" db:"placed_at"`
}
