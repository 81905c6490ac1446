package auction

import "errors"

// ErrInsufficientBudget is returned when the computed next bid amount
// exceeds the bidding team's remaining budget.  No state changes.
var ErrInsufficientBudget = errors.New("insufficient budget")

// ErrNoActiveItem is returned when close/settle runs with no item
// active.  The call is a no-op.
var ErrNoActiveItem = errors.New("no active item")

// ErrInvalidRating is returned when an admin submits a non-numeric
// player rating.  The item is not inserted.
var ErrInvalidRating = errors.New("invalid rating")

// ErrStaleBid is returned when the leading amount the bidder saw no
// longer matches the item's current leading amount.  The bid is not
// recorded.
var ErrStaleBid = errors.New("stale bid amount")
