package auction

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/peterldowns/testy/check"

	"github.com/iliyamo/live-auction/internal/repository"
)

var (
	itemCols = []string{"id", "name", "rating", "category", "nationality", "image_url",
		"base_price", "is_active", "winner_team", "unsold_at", "created_at", "updated_at"}
	teamCols = []string{"id", "name", "budget_remaining", "initial_budget", "logo_url",
		"password_hash", "created_at", "updated_at"}
	bidCols  = []string{"id", "item_id", "team_name", "amount", "created_at"}
	soldCols = []string{"id", "item_id", "item_name", "sold_amount", "rating", "category",
		"nationality", "team_name", "created_at"}
)

func newTestEngine(t *testing.T) (*Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	eng := NewEngine(db,
		repository.NewItemRepo(db),
		repository.NewTeamRepo(db),
		repository.NewBidRepo(db),
		repository.NewSaleRepo(db),
		nil)
	return eng, mock
}

func itemRow(base int64, active bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(itemCols).
		AddRow(7, "Opener", 90, "Batsman", "India", "", base, active, nil, nil, now, now)
}

func teamRow(name string, budget int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(teamCols).
		AddRow(1, name, budget, budget, "", "$2a$10$hash", now, now)
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEngine_PlaceBid_OpeningBidAtBasePrice(t *testing.T) {
	eng, mock := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM items WHERE id").WithArgs(7).WillReturnRows(itemRow(9_500_000, true))
	mock.ExpectQuery("FROM teams WHERE name").WithArgs("Titans").WillReturnRows(teamRow("Titans", 100_000_000))
	mock.ExpectQuery("SELECT COUNT").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bids").WithArgs(7, "Titans", 9_500_000).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE items SET base_price").WithArgs(9_500_000, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := eng.PlaceBid(context.Background(), 7, "Titans", 9_500_000)
	if err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	check.Equal(t, int64(9_500_000), res.Amount)
	check.Equal(t, int64(10_000_000), res.NextMin)
	expectMet(t, mock)
}

func TestEngine_PlaceBid_RejectsStaleObservedAmount(t *testing.T) {
	eng, mock := newTestEngine(t)

	// The bidder saw 95L but another bid has already moved the item to
	// one crore; nothing may be written.
	mock.ExpectBegin()
	mock.ExpectQuery("FROM items WHERE id").WithArgs(7).WillReturnRows(itemRow(10_000_000, true))
	mock.ExpectRollback()

	_, err := eng.PlaceBid(context.Background(), 7, "Titans", 9_500_000)
	if !errors.Is(err, ErrStaleBid) {
		t.Fatalf("want ErrStaleBid, got %v", err)
	}
	expectMet(t, mock)
}

func TestEngine_PlaceBid_InsufficientBudgetLeavesLedgersUntouched(t *testing.T) {
	eng, mock := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM items WHERE id").WithArgs(7).WillReturnRows(itemRow(9_500_000, true))
	mock.ExpectQuery("FROM teams WHERE name").WithArgs("Titans").WillReturnRows(teamRow("Titans", 5_000_000))
	mock.ExpectQuery("SELECT COUNT").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectRollback()

	_, err := eng.PlaceBid(context.Background(), 7, "Titans", 0)
	if !errors.Is(err, ErrInsufficientBudget) {
		t.Fatalf("want ErrInsufficientBudget, got %v", err)
	}
	// No insert or update expectations were registered, so meeting them
	// proves the rejection wrote nothing.
	expectMet(t, mock)
}

func TestEngine_CloseActive_DebitsExactlyTheWinningAmount(t *testing.T) {
	eng, mock := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("is_active = 1").WillReturnRows(itemRow(11_000_000, true))
	mock.ExpectQuery("ORDER BY amount DESC LIMIT 1").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(bidCols).AddRow(9, 7, "Titans", 11_000_000, time.Now()))
	mock.ExpectQuery("FROM sold_items WHERE item_id").WithArgs(7).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("budget_remaining - ").WithArgs(11_000_000, "Titans").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET winner_team").WithArgs("Titans", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sold_items").
		WithArgs(7, "Opener", 11_000_000, 90, "Batsman", "India", "Titans").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM unsold_items").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SET is_active = 0 WHERE id").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := eng.CloseActive(context.Background())
	if err != nil {
		t.Fatalf("CloseActive: %v", err)
	}
	check.Equal(t, true, res.Sold)
	check.Equal(t, "Titans", res.TeamName)
	check.Equal(t, int64(11_000_000), res.Amount)
	expectMet(t, mock)
}

func TestEngine_CloseActive_ResettleReplacesSnapshotAndRefunds(t *testing.T) {
	eng, mock := newTestEngine(t)

	// The item was sold to the Giants for 2 Cr, then reactivated (which
	// clears the winner) and bid up by the Titans.  Settling again must
	// refund the Giants and leave exactly one sold snapshot.
	mock.ExpectBegin()
	mock.ExpectQuery("is_active = 1").WillReturnRows(itemRow(11_000_000, true))
	mock.ExpectQuery("ORDER BY amount DESC LIMIT 1").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(bidCols).AddRow(9, 7, "Titans", 11_000_000, time.Now()))
	mock.ExpectQuery("FROM sold_items WHERE item_id").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(soldCols).
			AddRow(3, 7, "Opener", 20_000_000, 90, "Batsman", "India", "Giants", time.Now()))
	mock.ExpectExec(`budget_remaining \+`).WithArgs(20_000_000, "Giants").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM sold_items").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("budget_remaining - ").WithArgs(11_000_000, "Titans").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET winner_team").WithArgs("Titans", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sold_items").
		WithArgs(7, "Opener", 11_000_000, 90, "Batsman", "India", "Titans").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("DELETE FROM unsold_items").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SET is_active = 0 WHERE id").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := eng.CloseActive(context.Background())
	if err != nil {
		t.Fatalf("CloseActive: %v", err)
	}
	check.Equal(t, true, res.Sold)
	check.Equal(t, "Titans", res.TeamName)
	expectMet(t, mock)
}

func TestEngine_CloseActive_NoBidsLeavesWinnerUnset(t *testing.T) {
	eng, mock := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("is_active = 1").WillReturnRows(itemRow(9_500_000, true))
	mock.ExpectQuery("ORDER BY amount DESC LIMIT 1").WithArgs(7).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("SET is_active = 0 WHERE id").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := eng.CloseActive(context.Background())
	if err != nil {
		t.Fatalf("CloseActive: %v", err)
	}
	check.Equal(t, false, res.Sold)
	// No debit or snapshot insert was expected; meeting the
	// expectations proves budgets and history were untouched.
	expectMet(t, mock)
}

func TestEngine_CloseActive_NoActiveItem(t *testing.T) {
	eng, mock := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("is_active = 1").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := eng.CloseActive(context.Background())
	if !errors.Is(err, ErrNoActiveItem) {
		t.Fatalf("want ErrNoActiveItem, got %v", err)
	}
	expectMet(t, mock)
}

func TestEngine_MarkUnsold_ReplacesSnapshot(t *testing.T) {
	eng, mock := newTestEngine(t)

	// Marking twice deletes the earlier snapshot before inserting, so
	// exactly one unsold row survives.
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM items WHERE id").WithArgs(7).WillReturnRows(itemRow(9_500_000, false))
		mock.ExpectExec("SET winner_team").WithArgs("UNSOLD", 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM unsold_items").WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, int64(i)))
		mock.ExpectExec("INSERT INTO unsold_items").
			WithArgs(7, "Opener", 90, "Batsman", "India", "Unsold").
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		mock.ExpectCommit()
	}

	if err := eng.MarkUnsold(context.Background(), 7); err != nil {
		t.Fatalf("first MarkUnsold: %v", err)
	}
	if err := eng.MarkUnsold(context.Background(), 7); err != nil {
		t.Fatalf("second MarkUnsold: %v", err)
	}
	expectMet(t, mock)
}

func TestEngine_DeleteItem_CascadesLedgers(t *testing.T) {
	eng, mock := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bids").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM sold_items").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM unsold_items").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM items").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := eng.DeleteItem(context.Background(), 7); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	expectMet(t, mock)
}
