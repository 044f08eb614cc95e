package events

import (
	"time"

	"github.com/google/uuid"
)

// Broadcast event names shared between the engine and the fan-out adapters.
const (
	TypeRosterAssignmentUpdated = "RosterAssignmentUpdated"
	TypeNominationTurnChanged   = "NominationTurnChanged"
	TypeBiddingCompleted        = "BiddingCompleted"
	TypeTestBidPlaced           = "TestBidPlaced"
	TypeReadinessUpdated        = "ReadinessUpdated"
	TypeUserPassedOnTestBid     = "UserPassedOnTestBid"
)

// RosterAssignmentUpdatedPayload is emitted after a pick lands in a slot.
type RosterAssignmentUpdatedPayload struct {
	DraftPickID        uuid.UUID `json:"draft_pick_id"`
	TeamID             uuid.UUID `json:"team_id"`
	TeamName           string    `json:"team_name"`
	SchoolName         string    `json:"school_name"`
	RosterPositionName string    `json:"roster_position_name"`
}

// NominationTurnChangedPayload is emitted when the current nominator moves.
// The ids are nil when every nominator is skipped.
type NominationTurnChangedPayload struct {
	CurrentNominatorUserID      *uuid.UUID `json:"current_nominator_user_id"`
	CurrentNominatorDisplayName string     `json:"current_nominator_display_name"`
}

// BiddingCompletedPayload is emitted when settlement closes a school.
type BiddingCompletedPayload struct {
	DraftPickID  uuid.UUID `json:"draft_pick_id"`
	SchoolName   string    `json:"school_name"`
	WinningBid   int       `json:"winning_bid"`
	WinnerUserID uuid.UUID `json:"winner_user_id"`
	TeamID       uuid.UUID `json:"team_id"`
}

// TestBidPlacedPayload is emitted for every practice bid.
type TestBidPlacedPayload struct {
	AuctionID  uuid.UUID `json:"auction_id"`
	BidderName string    `json:"bidder_name"`
	Amount     int       `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// ReadinessUpdatedPayload is emitted when a user toggles draft readiness.
type ReadinessUpdatedPayload struct {
	AuctionID   uuid.UUID `json:"auction_id"`
	DisplayName string    `json:"display_name"`
	IsReady     bool      `json:"is_ready"`
}

// UserPassedOnTestBidPayload is emitted when a user passes on the current
// practice school.
type UserPassedOnTestBidPayload struct {
	AuctionID   uuid.UUID `json:"auction_id"`
	DisplayName string    `json:"display_name"`
}
