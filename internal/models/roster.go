package models

import (
	"time"

	"github.com/google/uuid"
)

// RosterPosition is a named slot definition for every team in an auction.
// Flex positions accept a school of any position label.
type RosterPosition struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AuctionID    uuid.UUID `json:"auction_id" db:"auction_id"`
	Name         string    `json:"name" db:"name"`
	SlotsPerTeam int       `json:"slots_per_team" db:"slots_per_team"`
	IsFlex       bool      `json:"is_flex" db:"is_flex"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
}

// DraftPick is the durable record of a school won at settlement.
// RosterPositionID is nil until the pick is assigned to a slot.
type DraftPick struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	AuctionID           uuid.UUID  `json:"auction_id" db:"auction_id"`
	TeamID              uuid.UUID  `json:"team_id" db:"team_id"`
	SchoolID            uuid.UUID  `json:"school_id" db:"school_id"`
	RosterPositionID    *uuid.UUID `json:"roster_position_id,omitempty" db:"roster_position_id"`
	WinningBid          int        `json:"winning_bid" db:"winning_bid"`
	NominatorUserID     *uuid.UUID `json:"nominator_user_id,omitempty" db:"nominator_user_id"`
	WinnerUserID        uuid.UUID  `json:"winner_user_id" db:"winner_user_id"`
	PickOrder           int        `json:"pick_order" db:"pick_order"`
	AssignmentConfirmed bool       `json:"assignment_confirmed" db:"assignment_confirmed"`
	WonAt               time.Time  `json:"won_at" db:"won_at"`
}
