package model

import "time"

// SoldItem is a settlement snapshot written when bidding closes with a
// winner.  Item fields are denormalized so the history survives later
// mutation of the live item row; ItemID keys the snapshot to the item's
// durable identity for deletion and squad aggregation.
//
// Fields:
//  ID          – primary key identifier.
//  ItemID      – durable reference to the sold item.
//  ItemName    – item name at settlement time.
//  SoldAmount  – winning amount in smallest currency units.
//  Rating      – item rating at settlement time.
//  Category    – item category at settlement time.
//  Nationality – item nationality at settlement time.
//  TeamName    – team that won the item.
//  CreatedAt   – when settlement happened.
type SoldItem struct {
	ID          uint64    // sold_items.id
	ItemID      uint64    // sold_items.item_id
	ItemName    string    // sold_items.item_name
	SoldAmount  int64     // sold_items.sold_amount
	Rating      int32     // sold_items.rating
	Category    string    // sold_items.category
	Nationality string    // sold_items.nationality
	TeamName    string    // sold_items.team_name
	CreatedAt   time.Time // sold_items.created_at
}

// UnsoldItem is a snapshot written when the auctioneer marks an item
// unsold.  It is removed again if the item is later sold.
//
// Fields:
//  ID          – primary key identifier.
//  ItemID      – durable reference to the unsold item.
//  ItemName    – item name when marked unsold.
//  Rating      – item rating when marked unsold.
//  Category    – item category when marked unsold.
//  Nationality – item nationality when marked unsold.
//  Status      – human-readable status label ("Unsold").
//  CreatedAt   – when the item was marked unsold.
type UnsoldItem struct {
	ID          uint64    // unsold_items.id
	ItemID      uint64    // unsold_items.item_id
	ItemName    string    // unsold_items.item_name
	Rating      int32     // unsold_items.rating
	Category    string    // unsold_items.category
	Nationality string    // unsold_items.nationality
	Status      string    // unsold_items.status
	CreatedAt   time.Time // unsold_items.created_at
}
