package model

import "time"

// UnsoldSentinel is the value stored in items.winner_team when the
// auctioneer explicitly marks an item unsold.  A NULL winner_team means
// the item has never been resolved (or was reactivated).
const UnsoldSentinel = "UNSOLD"

// Player categories accepted by the registry.
const (
	CategoryBatsman      = "Batsman"
	CategoryBowler       = "Bowler"
	CategoryAllrounder   = "Allrounder"
	CategoryWicketkeeper = "Wicketkeeper"
)

// Item represents an auctionable player as stored in the `items` table.
// BasePrice is not a fixed catalog price: it is overwritten with every
// accepted bid so that the current leading amount is always readable
// from the item row itself.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – player name.
//  Rating      – numeric player rating.
//  Category    – one of Batsman, Bowler, Allrounder, Wicketkeeper.
//  Nationality – free-text nationality.
//  ImageURL    – reference to the player image shown by the dashboard.
//  BasePrice   – current leading amount in smallest currency units.
//  IsActive    – whether bidding is open on this item; at most one item
//                is active across the whole registry at any time.
//  WinnerTeam  – winning team name after settlement, the sentinel
//                "UNSOLD", or nil when unresolved.
//  UnsoldAt    – when the item was last marked unsold (nil otherwise);
//                used only for a short "just unsold" display window.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Item struct {
	ID          uint64     // items.id
	Name        string     // items.name
	Rating      int32      // items.rating
	Category    string     // items.category
	Nationality string     // items.nationality
	ImageURL    string     // items.image_url
	BasePrice   int64      // items.base_price
	IsActive    bool       // items.is_active
	WinnerTeam  *string    // items.winner_team (nullable)
	UnsoldAt    *time.Time // items.unsold_at (nullable)
	CreatedAt   time.Time  // items.created_at
	UpdatedAt   time.Time  // items.updated_at
}

// ValidCategory reports whether s is one of the enumerated player
// categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryBatsman, CategoryBowler, CategoryAllrounder, CategoryWicketkeeper:
		return true
	}
	return false
}
