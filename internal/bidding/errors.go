package bidding

import "errors"

// Errors returned by bid placement and settlement.
var (
	// ErrBidTooLow is returned when an amount does not beat the current
	// high bid (or is not positive when no bid exists).
	ErrBidTooLow = errors.New("bid too low")
	// ErrInsufficientFunds is returned when the bidder's team cannot cover
	// the amount with its remaining budget.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNoActiveBidding is returned when an operation requires live
	// bidding (a current school and high bidder) and there is none, or the
	// auction is not in progress.
	ErrNoActiveBidding = errors.New("no active bidding")
	// ErrSchoolMismatch is returned when a bid names a different school than
	// the one currently up for bidding.
	ErrSchoolMismatch = errors.New("another school is up for bidding")
	// ErrTeamRequired is returned when the bidder is not linked to any team.
	ErrTeamRequired = errors.New("user has no team")
	// ErrAlreadyPassed is returned when a user practice-bids on a school
	// they passed on. A pass is not revocable within the round.
	ErrAlreadyPassed = errors.New("already passed on this practice school")
)
