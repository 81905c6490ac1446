package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/live-auction/internal/model"
)

// SaleRepo provides data access to the sold_items and unsold_items
// history tables.  Both are snapshots keyed by the item's durable id so
// that renaming an item (or two items sharing a name) cannot corrupt
// history.
type SaleRepo struct {
	db *sql.DB
}

// NewSaleRepo returns a new SaleRepo bound to the provided database.
func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

// InsertSoldTx writes a settlement snapshot inside the provided
// transaction.
func (r *SaleRepo) InsertSoldTx(ctx context.Context, tx *sql.Tx, s model.SoldItem) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO sold_items (item_id, item_name, sold_amount, rating, category, nationality, team_name) VALUES (?,?,?,?,?,?,?)`,
		s.ItemID, s.ItemName, s.SoldAmount, s.Rating, s.Category, s.Nationality, s.TeamName)
	return err
}

// GetSoldByItemTx returns the settlement snapshot for an item, or
// sql.ErrNoRows when the item has never been sold.
func (r *SaleRepo) GetSoldByItemTx(ctx context.Context, tx *sql.Tx, itemID uint64) (model.SoldItem, error) {
	var s model.SoldItem
	err := tx.QueryRowContext(ctx,
		`SELECT id, item_id, item_name, sold_amount, rating, category, nationality, team_name, created_at FROM sold_items WHERE item_id = ? LIMIT 1`,
		itemID).Scan(&s.ID, &s.ItemID, &s.ItemName, &s.SoldAmount, &s.Rating, &s.Category, &s.Nationality, &s.TeamName, &s.CreatedAt)
	return s, err
}

// DeleteSoldByItemTx removes the settlement snapshot for an item.  Used
// when a sale is corrected by re-opened bidding and on item deletion.
func (r *SaleRepo) DeleteSoldByItemTx(ctx context.Context, tx *sql.Tx, itemID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM sold_items WHERE item_id = ?`, itemID)
	return err
}

// InsertUnsoldTx writes an unsold snapshot inside the provided
// transaction.
func (r *SaleRepo) InsertUnsoldTx(ctx context.Context, tx *sql.Tx, u model.UnsoldItem) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO unsold_items (item_id, item_name, rating, category, nationality, status) VALUES (?,?,?,?,?,?)`,
		u.ItemID, u.ItemName, u.Rating, u.Category, u.Nationality, u.Status)
	return err
}

// DeleteUnsoldByItemTx removes any unsold snapshot for an item.  Called
// before inserting a fresh snapshot (so marking unsold twice keeps
// exactly one row), when the item is eventually sold, and on deletion.
func (r *SaleRepo) DeleteUnsoldByItemTx(ctx context.Context, tx *sql.Tx, itemID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM unsold_items WHERE item_id = ?`, itemID)
	return err
}

// SoldAmountsByTeam returns a map of item id to sold amount for every
// item a team has bought.  The squad aggregator uses this to sum spend
// without a per-item query.
func (r *SaleRepo) SoldAmountsByTeam(ctx context.Context, teamName string) (map[uint64]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, sold_amount FROM sold_items WHERE team_name = ?`, teamName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	amounts := make(map[uint64]int64)
	for rows.Next() {
		var id uint64
		var amount int64
		if err := rows.Scan(&id, &amount); err != nil {
			return nil, err
		}
		amounts[id] = amount
	}
	return amounts, rows.Err()
}

// ListSold returns the full sold history, newest first.
func (r *SaleRepo) ListSold(ctx context.Context) ([]model.SoldItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, item_id, item_name, sold_amount, rating, category, nationality, team_name, created_at FROM sold_items ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []model.SoldItem
	for rows.Next() {
		var s model.SoldItem
		if err := rows.Scan(&s.ID, &s.ItemID, &s.ItemName, &s.SoldAmount, &s.Rating, &s.Category, &s.Nationality, &s.TeamName, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// ListUnsold returns the full unsold history, newest first.
func (r *SaleRepo) ListUnsold(ctx context.Context) ([]model.UnsoldItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, item_id, item_name, rating, category, nationality, status, created_at FROM unsold_items ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.UnsoldItem
	for rows.Next() {
		var u model.UnsoldItem
		if err := rows.Scan(&u.ID, &u.ItemID, &u.ItemName, &u.Rating, &u.Category, &u.Nationality, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}
