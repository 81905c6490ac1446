package repository // repository for auction item persistence

import (
	"context"
	"database/sql"

	"github.com/iliyamo/live-auction/internal/model"
)

const itemColumns = `id, name, rating, category, nationality, image_url, base_price, is_active, winner_team, unsold_at, created_at, updated_at`

// ItemRepo encapsulates database operations for the items table.  All
// state transitions on items (activate, settle, mark unsold) go through
// the Tx-suffixed methods so that the auction engine can run them inside
// a single transaction.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo constructs an ItemRepo given a DB handle.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

func scanItem(row interface{ Scan(...any) error }) (model.Item, error) {
	var it model.Item
	err := row.Scan(&it.ID, &it.Name, &it.Rating, &it.Category, &it.Nationality,
		&it.ImageURL, &it.BasePrice, &it.IsActive, &it.WinnerTeam, &it.UnsoldAt,
		&it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// Create inserts a new item and returns its id.  The item starts
// inactive with no winner; base_price is the admin-supplied minimum.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO items (name, rating, category, nationality, image_url, base_price, is_active) VALUES (?,?,?,?,?,?,0)`,
		it.Name, it.Rating, it.Category, it.Nationality, it.ImageURL, it.BasePrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// GetByID fetches an item by id.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (model.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.Item{}, ErrItemNotFound
	}
	return it, err
}

// GetByIDTx is GetByID inside an existing transaction.
func (r *ItemRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Item, error) {
	it, err := scanItem(tx.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.Item{}, ErrItemNotFound
	}
	return it, err
}

// GetActiveTx returns the currently active item.  At most one item is
// active at a time; the LIMIT 1 guards against a corrupted registry
// rather than expressing a real choice.  Returns sql.ErrNoRows when
// nothing is active.
func (r *ItemRepo) GetActiveTx(ctx context.Context, tx *sql.Tx) (model.Item, error) {
	return scanItem(tx.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE is_active = 1 LIMIT 1`))
}

// GetActive returns the currently active item outside a transaction.
func (r *ItemRepo) GetActive(ctx context.Context) (model.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE is_active = 1 LIMIT 1`))
	return it, err
}

// List returns all items ordered by creation.
func (r *ItemRepo) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByWinner returns all items won by the given team.  Items marked
// with the UNSOLD sentinel never match a real team name.
func (r *ItemRepo) ListByWinner(ctx context.Context, teamName string) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE winner_team = ? ORDER BY id`, teamName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ActivateTx deactivates every item and then activates the target,
// clearing any previous winner so a fresh bidding round starts.  It
// returns ErrItemNotFound when the target id does not exist.
func (r *ItemRepo) ActivateTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	if _, err := tx.ExecContext(ctx, `UPDATE items SET is_active = 0 WHERE is_active = 1`); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE items SET is_active = 1, winner_team = NULL WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// SetBasePriceTx overwrites the item's base_price with the latest
// accepted bid so the current leading amount is readable from the item.
func (r *ItemRepo) SetBasePriceTx(ctx context.Context, tx *sql.Tx, id uint64, amount int64) error {
	_, err := tx.ExecContext(ctx, `UPDATE items SET base_price = ? WHERE id = ?`, amount, id)
	return err
}

// SetWinnerTx records the winning team on the item at settlement time.
func (r *ItemRepo) SetWinnerTx(ctx context.Context, tx *sql.Tx, id uint64, teamName string) error {
	_, err := tx.ExecContext(ctx, `UPDATE items SET winner_team = ? WHERE id = ?`, teamName, id)
	return err
}

// DeactivateTx closes bidding on the item without resolving it.
func (r *ItemRepo) DeactivateTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `UPDATE items SET is_active = 0 WHERE id = ?`, id)
	return err
}

// MarkUnsoldTx applies the unsold sentinel, deactivates the item and
// stamps unsold_at with the current UTC time.
func (r *ItemRepo) MarkUnsoldTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE items SET winner_team = ?, is_active = 0, unsold_at = UTC_TIMESTAMP() WHERE id = ?`,
		model.UnsoldSentinel, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// DeleteTx removes the item row.  Bids and history snapshots are
// removed by the engine in the same transaction.
func (r *ItemRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}
