package model

import "time"

// Bid is an immutable append-only record in the `bids` table.  Bids are
// never updated or deleted except when the item they belong to is
// deleted, which cascades.  The row with the maximum amount for an item
// is the current winning bid.
//
// Fields:
//  ID        – primary key identifier.
//  ItemID    – item the bid was placed on.
//  TeamName  – team that placed the bid.
//  Amount    – accepted bid amount in smallest currency units.
//  CreatedAt – when the bid was accepted.
type Bid struct {
	ID        uint64    // bids.id
	ItemID    uint64    // bids.item_id
	TeamName  string    // bids.team_name
	Amount    int64     // bids.amount
	CreatedAt time.Time // bids.created_at
}
