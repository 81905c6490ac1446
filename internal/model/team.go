package model

import "time"

// Team represents a bidding team as stored in the `teams` table.  Teams
// are identified by their unique name.  BudgetRemaining is mutated only
// by settlement and refund inside the auction engine; InitialBudget is
// fixed at creation and used for display ratios only.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – unique team name.
//  BudgetRemaining – remaining budget in smallest currency units.
//  InitialBudget   – budget the team started with.
//  LogoURL         – team logo shown by the dashboard.
//  PasswordHash    – bcrypt hash of the team password.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Team struct {
	ID              uint64    // teams.id
	Name            string    // teams.name
	BudgetRemaining int64     // teams.budget_remaining
	InitialBudget   int64     // teams.initial_budget
	LogoURL         string    // teams.logo_url
	PasswordHash    string    // teams.password_hash
	CreatedAt       time.Time // teams.created_at
	UpdatedAt       time.Time // teams.updated_at
}
