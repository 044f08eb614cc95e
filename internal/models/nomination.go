package models

import "github.com/google/uuid"

// NominationOrder is one slot in an auction's nomination turn sequence.
// Position is unique per auction. Skipped users keep their position but are
// never selected as nominator.
type NominationOrder struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AuctionID    uuid.UUID `json:"auction_id" db:"auction_id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Position     int       `json:"position" db:"position"`
	HasNominated bool      `json:"has_nominated" db:"has_nominated"`
	IsSkipped    bool      `json:"is_skipped" db:"is_skipped"`
}
