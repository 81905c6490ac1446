package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/live-auction/internal/model"
	"github.com/iliyamo/live-auction/internal/utils"
)

const teamColumns = `id, name, budget_remaining, initial_budget, logo_url, password_hash, created_at, updated_at`

// TeamRepo provides data access to the teams table.  Budget mutation
// methods are Tx-only: debits and refunds must happen inside the same
// transaction as the settlement or bid they belong to, so the budget
// check is never separated from the write.
type TeamRepo struct {
	db *sql.DB
}

// NewTeamRepo returns a new TeamRepo bound to the provided database.
func NewTeamRepo(db *sql.DB) *TeamRepo { return &TeamRepo{db: db} }

func scanTeam(row interface{ Scan(...any) error }) (model.Team, error) {
	var t model.Team
	err := row.Scan(&t.ID, &t.Name, &t.BudgetRemaining, &t.InitialBudget,
		&t.LogoURL, &t.PasswordHash, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create inserts a team with its starting budget and a bcrypt hash of
// the supplied password.  The initial budget equals the remaining
// budget at creation time.
func (r *TeamRepo) Create(ctx context.Context, name string, budget int64, logoURL, password string, bcryptCost int) (uint64, error) {
	name = strings.TrimSpace(name)
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO teams (name, budget_remaining, initial_budget, logo_url, password_hash) VALUES (?,?,?,?,?)`,
		name, budget, budget, logoURL, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrTeamExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByName fetches a team by its unique name.
func (r *TeamRepo) GetByName(ctx context.Context, name string) (model.Team, error) {
	t, err := scanTeam(r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE name = ? LIMIT 1`, strings.TrimSpace(name)))
	if err == sql.ErrNoRows {
		return model.Team{}, ErrTeamNotFound
	}
	return t, err
}

// GetByNameTx is GetByName inside an existing transaction.
func (r *TeamRepo) GetByNameTx(ctx context.Context, tx *sql.Tx, name string) (model.Team, error) {
	t, err := scanTeam(tx.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE name = ? LIMIT 1`, strings.TrimSpace(name)))
	if err == sql.ErrNoRows {
		return model.Team{}, ErrTeamNotFound
	}
	return t, err
}

// List returns all teams ordered by name.
func (r *TeamRepo) List(ctx context.Context) ([]model.Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var teams []model.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// DebitTx subtracts amount from the team's remaining budget.  Callers
// must have verified the balance inside the same transaction.
func (r *TeamRepo) DebitTx(ctx context.Context, tx *sql.Tx, name string, amount int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE teams SET budget_remaining = budget_remaining - ? WHERE name = ?`, amount, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// CreditTx adds amount back to the team's remaining budget.  Used when
// a settled sale is corrected by a later bid.
func (r *TeamRepo) CreditTx(ctx context.Context, tx *sql.Tx, name string, amount int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE teams SET budget_remaining = budget_remaining + ? WHERE name = ?`, amount, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// Update edits a team's budget and logo.  The password is changed only
// when newPassword is non-empty.
func (r *TeamRepo) Update(ctx context.Context, name string, budget int64, logoURL, newPassword string, bcryptCost int) error {
	if newPassword != "" {
		hash, err := utils.HashPassword(newPassword, bcryptCost)
		if err != nil {
			return err
		}
		res, err := r.db.ExecContext(ctx,
			`UPDATE teams SET budget_remaining = ?, logo_url = ?, password_hash = ? WHERE name = ?`,
			budget, logoURL, hash, name)
		if err != nil {
			return err
		}
		return affectedOrNotFound(res, ErrTeamNotFound)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE teams SET budget_remaining = ?, logo_url = ? WHERE name = ?`, budget, logoURL, name)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrTeamNotFound)
}

// Delete removes a team by name.
func (r *TeamRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE name = ?`, name)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrTeamNotFound)
}

// DeleteAll clears the teams table.  Exposed for the admin "clear all
// teams" action used when resetting an auction.
func (r *TeamRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM teams`)
	return err
}

func affectedOrNotFound(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
