// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records settlement outcomes.
package queue

// Queue names used for settlement events.  Both queues are declared
// durable by publisher and consumer alike.
const (
	ItemSoldQueue   = "auction.sold"
	ItemUnsoldQueue = "auction.unsold"
)

// ItemSoldEvent is published when bidding closes with a winner.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ItemSoldEvent struct {
	ItemID          uint64 `json:"item_id"`
	ItemName        string `json:"item_name"`
	TeamName        string `json:"team"`
	Amount          int64  `json:"amount"`
	FormattedAmount string `json:"formatted_amount"`
	Rating          int32  `json:"rating"`
	Category        string `json:"category"`
}

// ItemUnsoldEvent is published when the auctioneer marks an item
// unsold.
type ItemUnsoldEvent struct {
	ItemID   uint64 `json:"item_id"`
	ItemName string `json:"item_name"`
	Rating   int32  `json:"rating"`
	Category string `json:"category"`
}
