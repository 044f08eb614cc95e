package roster

import "errors"

// Errors returned by slot assignment.
var (
	// ErrPositionMismatch is returned when a school's position label does
	// not match a non-flex roster position's name.
	ErrPositionMismatch = errors.New("school position does not match roster position")
	// ErrSlotsFull is returned when the team already fills every slot of
	// the requested position.
	ErrSlotsFull = errors.New("roster position slots are full")
	// ErrNoEligiblePosition is returned when auto-assignment finds no
	// position with both a match and a free slot.
	ErrNoEligiblePosition = errors.New("no eligible roster position with a free slot")
)
