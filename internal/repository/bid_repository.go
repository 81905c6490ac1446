package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/live-auction/internal/model"
)

// BidRepo provides data access to the append-only bids table.  Bids are
// only ever inserted; the single delete path is the cascade that runs
// when an item is removed.
type BidRepo struct {
	db *sql.DB
}

// NewBidRepo returns a new BidRepo bound to the provided database.
func NewBidRepo(db *sql.DB) *BidRepo { return &BidRepo{db: db} }

// CreateTx appends a bid inside the provided transaction.
func (r *BidRepo) CreateTx(ctx context.Context, tx *sql.Tx, itemID uint64, teamName string, amount int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO bids (item_id, team_name, amount) VALUES (?,?,?)`,
		itemID, teamName, amount)
	return err
}

// CountByItemTx returns how many bids exist for an item.  A count of
// zero means the next accepted bid is the opening bid at base price.
func (r *BidRepo) CountByItemTx(ctx context.Context, tx *sql.Tx, itemID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bids WHERE item_id = ?`, itemID).Scan(&n)
	return n, err
}

// HighestByItemTx returns the current winning bid for an item, or
// sql.ErrNoRows when the item has no bids.
func (r *BidRepo) HighestByItemTx(ctx context.Context, tx *sql.Tx, itemID uint64) (model.Bid, error) {
	var b model.Bid
	err := tx.QueryRowContext(ctx,
		`SELECT id, item_id, team_name, amount, created_at FROM bids WHERE item_id = ? ORDER BY amount DESC LIMIT 1`,
		itemID).Scan(&b.ID, &b.ItemID, &b.TeamName, &b.Amount, &b.CreatedAt)
	return b, err
}

// HighestByItem is HighestByItemTx outside a transaction, for the read
// path the dashboard polls.
func (r *BidRepo) HighestByItem(ctx context.Context, itemID uint64) (model.Bid, error) {
	var b model.Bid
	err := r.db.QueryRowContext(ctx,
		`SELECT id, item_id, team_name, amount, created_at FROM bids WHERE item_id = ? ORDER BY amount DESC LIMIT 1`,
		itemID).Scan(&b.ID, &b.ItemID, &b.TeamName, &b.Amount, &b.CreatedAt)
	return b, err
}

// ListByItem returns the full bid history for an item, newest first.
func (r *BidRepo) ListByItem(ctx context.Context, itemID uint64) ([]model.Bid, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, item_id, team_name, amount, created_at FROM bids WHERE item_id = ? ORDER BY amount DESC`,
		itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var bids []model.Bid
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.ID, &b.ItemID, &b.TeamName, &b.Amount, &b.CreatedAt); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// DeleteByItemTx removes all bids for an item as part of item deletion.
func (r *BidRepo) DeleteByItemTx(ctx context.Context, tx *sql.Tx, itemID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM bids WHERE item_id = ?`, itemID)
	return err
}
