package models

import (
	"time"

	"github.com/google/uuid"
)

// Role defines a user's relationship to a team within an auction.
type Role string

const (
	RoleAuctionMaster Role = "AUCTION_MASTER"
	RoleTeamCoach     Role = "TEAM_COACH"
	RoleProxyCoach    Role = "PROXY_COACH"
)

// RolePriority orders roles for team resolution at settlement: a user coaching
// their own team wins over a proxy assignment.
func (r Role) Priority() int {
	switch r {
	case RoleTeamCoach:
		return 0
	case RoleProxyCoach:
		return 1
	default:
		return 2
	}
}

// User is a participant in a single auction. DisplayName is unique per
// auction, case-insensitively.
type User struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	AuctionID          uuid.UUID `json:"auction_id" db:"auction_id"`
	DisplayName        string    `json:"display_name" db:"display_name"`
	Connected          bool      `json:"connected" db:"connected"`
	HasTestedBidding   bool      `json:"has_tested_bidding" db:"has_tested_bidding"`
	IsReadyToDraft     bool      `json:"is_ready_to_draft" db:"is_ready_to_draft"`
	HasPassedOnTestBid bool      `json:"has_passed_on_test_bid" db:"has_passed_on_test_bid"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// UserRole links a user to a team with a given role. A user may hold several
// role rows, one per team.
type UserRole struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AuctionID uuid.UUID `json:"auction_id" db:"auction_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	TeamID    uuid.UUID `json:"team_id" db:"team_id"`
	Role      Role      `json:"role" db:"role"`
}
