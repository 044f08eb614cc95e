package auction

import "errors"

// ErrInvalidTransition is returned when a status change is not in the
// lifecycle transition table. The auction is left untouched.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNameTaken is returned when a display name is already used in the
// auction (comparison is case-insensitive).
var ErrNameTaken = errors.New("display name already taken")
