package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is one bidding entity in an auction. Budget is fixed at creation;
// RemainingBudget only moves at settlement and stays within [0, Budget].
type Team struct {
	ID              uuid.UUID `json:"id" db:"id"`
	AuctionID       uuid.UUID `json:"auction_id" db:"auction_id"`
	OwnerUserID     uuid.UUID `json:"owner_user_id" db:"owner_user_id"`
	Name            string    `json:"name" db:"name"`
	Budget          int       `json:"budget" db:"budget"`
	RemainingBudget int       `json:"remaining_budget" db:"remaining_budget"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
