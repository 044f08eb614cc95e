package models

import "github.com/google/uuid"

// School is a draftable entity. Position is the label matched against
// non-flex roster positions (e.g. "QB"). Schools are imported by a
// collaborator; the engine only reads them.
type School struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AuctionID uuid.UUID `json:"auction_id" db:"auction_id"`
	Name      string    `json:"name" db:"name"`
	Position  string    `json:"position" db:"position"`
}
