package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
)

// Errors shared by every store implementation.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert collides with an existing row,
	// such as a duplicate room code or display name. Callers may retry the
	// whole operation with fresh input.
	ErrConflict = errors.New("conflict")
)

// AuctionRepository defines auction persistence operations.
type AuctionRepository interface {
	Create(ctx context.Context, a *models.Auction) error
	Get(ctx context.Context, id uuid.UUID) (*models.Auction, error)
	GetByJoinCode(ctx context.Context, code string) (*models.Auction, error)
	GetByRecoveryCode(ctx context.Context, code string) (*models.Auction, error)
	// GetForUpdate reads the auction while holding a write lock on its row
	// for the remainder of the enclosing transaction. Outside a transaction
	// it behaves like Get.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Auction, error)
	Update(ctx context.Context, a *models.Auction) error
}

// TeamRepository defines team persistence operations.
type TeamRepository interface {
	Create(ctx context.Context, t *models.Team) error
	Get(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Team, error)
	UpdateRemainingBudget(ctx context.Context, id uuid.UUID, remaining int) error
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	// GetByDisplayName matches case-insensitively within an auction.
	GetByDisplayName(ctx context.Context, auctionID uuid.UUID, name string) (*models.User, error)
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	// ResetPracticeFlags clears every user's has-passed-on-test-bid flag
	// for the auction. With clearTested it also clears has-tested-bidding,
	// used by a full practice reset.
	ResetPracticeFlags(ctx context.Context, auctionID uuid.UUID, clearTested bool) error
}

// RoleRepository defines user-role persistence operations.
type RoleRepository interface {
	Create(ctx context.Context, r *models.UserRole) error
	ListByUser(ctx context.Context, auctionID, userID uuid.UUID) ([]models.UserRole, error)
}

// BidRepository defines bid-ledger operations. The ledger is append-only;
// MarkWinning is the single permitted mutation and DeleteTestBids exists only
// for resetting the practice round.
type BidRepository interface {
	Append(ctx context.Context, b *models.BidHistory) error
	MarkWinning(ctx context.Context, id uuid.UUID) error
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.BidHistory, error)
	// FindLive locates the ledger row for a settled live bid.
	FindLive(ctx context.Context, auctionID, schoolID, userID uuid.UUID, amount int) (*models.BidHistory, error)
	// HighestByTag returns the highest practice bid carrying tag, or nil.
	HighestByTag(ctx context.Context, auctionID uuid.UUID, tag string) (*models.BidHistory, error)
	DeleteTestBids(ctx context.Context, auctionID uuid.UUID) error
}

// NominationRepository defines nomination-order operations.
type NominationRepository interface {
	Create(ctx context.Context, n *models.NominationOrder) error
	// ListByAuction returns entries in ascending position order.
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.NominationOrder, error)
	Update(ctx context.Context, n *models.NominationOrder) error
	// ResetHasNominated clears the has-nominated flag for every entry.
	ResetHasNominated(ctx context.Context, auctionID uuid.UUID) error
}

// RosterPositionRepository defines roster-position operations.
type RosterPositionRepository interface {
	Create(ctx context.Context, p *models.RosterPosition) error
	Get(ctx context.Context, id uuid.UUID) (*models.RosterPosition, error)
	// ListByAuction returns positions in ascending display order.
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.RosterPosition, error)
}

// DraftPickRepository defines draft-pick operations.
type DraftPickRepository interface {
	Create(ctx context.Context, p *models.DraftPick) error
	Get(ctx context.Context, id uuid.UUID) (*models.DraftPick, error)
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.DraftPick, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.DraftPick, error)
	Update(ctx context.Context, p *models.DraftPick) error
	// NextPickOrder returns the next monotonic pick number for the auction.
	NextPickOrder(ctx context.Context, auctionID uuid.UUID) (int, error)
	// CountAssigned counts confirmed picks holding a roster position.
	CountAssigned(ctx context.Context, auctionID uuid.UUID) (int, error)
	// CountByTeamAndPosition counts a team's picks in a position, excluding
	// the pick being reassigned (uuid.Nil excludes nothing).
	CountByTeamAndPosition(ctx context.Context, teamID, positionID, excludePickID uuid.UUID) (int, error)
}

// SchoolRepository defines school read/seed operations.
type SchoolRepository interface {
	Create(ctx context.Context, s *models.School) error
	Get(ctx context.Context, id uuid.UUID) (*models.School, error)
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.School, error)
}

// Store aggregates the repositories behind a transactional boundary.
// WithTx runs fn against a transaction-bound Store: if fn returns an error
// every write inside it is rolled back. Calling WithTx on an already
// transaction-bound Store joins the existing transaction, which is what lets
// settlement and turn advancement share one commit.
type Store interface {
	Auctions() AuctionRepository
	Teams() TeamRepository
	Users() UserRepository
	Roles() RoleRepository
	Bids() BidRepository
	Nominations() NominationRepository
	RosterPositions() RosterPositionRepository
	DraftPicks() DraftPickRepository
	Schools() SchoolRepository

	WithTx(ctx context.Context, fn func(tx Store) error) error
}
