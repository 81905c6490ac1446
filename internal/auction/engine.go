package auction

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync"

	"github.com/iliyamo/live-auction/internal/model"
	"github.com/iliyamo/live-auction/internal/queue"
	"github.com/iliyamo/live-auction/internal/repository"
)

// EventPublisher delivers settlement events to the message broker.
// Publishing happens after commit and failures are logged, never
// surfaced to the caller: the auction outcome is already durable.
type EventPublisher interface {
	PublishItemSold(ctx context.Context, ev queue.ItemSoldEvent) error
	PublishItemUnsold(ctx context.Context, ev queue.ItemUnsoldEvent) error
}

// Engine owns the auction state machine.  Every mutating operation
// acquires the engine mutex and then runs a single SQL transaction, so
// place-bid, activate, settle and mark-unsold are linearizable with
// respect to each other and either fully apply or are rejected.  One
// Engine instance corresponds to one auction.
type Engine struct {
	mu     sync.Mutex
	db     *sql.DB
	items  *repository.ItemRepo
	teams  *repository.TeamRepo
	bids   *repository.BidRepo
	sales  *repository.SaleRepo
	events EventPublisher
}

// NewEngine constructs an Engine.  The publisher may be nil, in which
// case settlement events are not emitted.
func NewEngine(db *sql.DB, items *repository.ItemRepo, teams *repository.TeamRepo, bids *repository.BidRepo, sales *repository.SaleRepo, events EventPublisher) *Engine {
	if db == nil || items == nil || teams == nil || bids == nil || sales == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{db: db, items: items, teams: teams, bids: bids, sales: sales, events: events}
}

// BidResult reports an accepted bid back to the caller.
type BidResult struct {
	ItemID   uint64 `json:"item_id"`
	TeamName string `json:"team"`
	Amount   int64  `json:"amount"`
	NextMin  int64  `json:"next_min"`
}

// PlaceBid validates and accepts a bid by teamName on itemID.  The
// accepted amount is always computed server-side from the item's
// current leading amount: the base price exactly for the opening bid,
// otherwise leading amount plus the tier increment.  observed is the
// leading amount the bidder saw when pressing the button; a non-zero
// observed that no longer matches the item is rejected with ErrStaleBid
// so a lagging dashboard cannot bid blind.  Bidding on an already-sold
// item is treated as a correction: the previous winner is refunded and
// the settlement snapshot removed in the same transaction.  Returns
// ErrInsufficientBudget without any state change when the team cannot
// cover the computed amount.
func (e *Engine) PlaceBid(ctx context.Context, itemID uint64, teamName string, observed int64) (BidResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return BidResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	item, err := e.items.GetByIDTx(ctx, tx, itemID)
	if err != nil {
		return BidResult{}, err
	}
	if observed != 0 && observed != item.BasePrice {
		return BidResult{}, ErrStaleBid
	}
	team, err := e.teams.GetByNameTx(ctx, tx, teamName)
	if err != nil {
		return BidResult{}, err
	}
	bidCount, err := e.bids.CountByItemTx(ctx, tx, itemID)
	if err != nil {
		return BidResult{}, err
	}
	amount := NextAmount(item.BasePrice, bidCount)
	if amount > team.BudgetRemaining {
		return BidResult{}, ErrInsufficientBudget
	}

	// A non-UNSOLD winner means the item was already settled; undo that
	// settlement before recording the correcting bid.
	if item.WinnerTeam != nil && *item.WinnerTeam != model.UnsoldSentinel {
		sold, err := e.sales.GetSoldByItemTx(ctx, tx, itemID)
		switch {
		case err == nil:
			if err := e.teams.CreditTx(ctx, tx, sold.TeamName, sold.SoldAmount); err != nil {
				return BidResult{}, err
			}
			if err := e.sales.DeleteSoldByItemTx(ctx, tx, itemID); err != nil {
				return BidResult{}, err
			}
		case errors.Is(err, sql.ErrNoRows):
			// winner set but no snapshot; nothing to refund
		default:
			return BidResult{}, err
		}
	}

	if err := e.bids.CreateTx(ctx, tx, itemID, team.Name, amount); err != nil {
		return BidResult{}, err
	}
	if err := e.items.SetBasePriceTx(ctx, tx, itemID, amount); err != nil {
		return BidResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return BidResult{}, err
	}
	committed = true
	return BidResult{
		ItemID:   itemID,
		TeamName: team.Name,
		Amount:   amount,
		NextMin:  amount + Increment(amount),
	}, nil
}

// Activate opens bidding on itemID.  Every other item is deactivated
// first (single active slot) and any previous winner on the target is
// cleared so a fresh round starts.
func (e *Engine) Activate(ctx context.Context, itemID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := e.items.ActivateTx(ctx, tx, itemID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Settlement reports the outcome of CloseActive.
type Settlement struct {
	Item     model.Item `json:"item"`
	Sold     bool       `json:"sold"`
	TeamName string     `json:"team,omitempty"`
	Amount   int64      `json:"amount,omitempty"`
}

// CloseActive settles the active item.  With at least one bid the
// highest bidder wins: their budget is debited by the winning amount,
// the item records the winner, a sold snapshot is written and any
// unsold snapshot removed.  With no bids the item just deactivates and
// its winner stays NULL — a distinct "no resolution" state that the
// admin can reactivate.  Returns ErrNoActiveItem when nothing is
// active.
func (e *Engine) CloseActive(ctx context.Context) (Settlement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return Settlement{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	item, err := e.items.GetActiveTx(ctx, tx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Settlement{}, ErrNoActiveItem
		}
		return Settlement{}, err
	}

	result := Settlement{Item: item}
	highest, err := e.bids.HighestByItemTx(ctx, tx, item.ID)
	switch {
	case err == nil:
		// A reactivated item can still carry the snapshot of an earlier
		// hammer fall; refund that team and drop the row so exactly one
		// sold snapshot per item survives re-settlement.
		prior, perr := e.sales.GetSoldByItemTx(ctx, tx, item.ID)
		switch {
		case perr == nil:
			if err := e.teams.CreditTx(ctx, tx, prior.TeamName, prior.SoldAmount); err != nil {
				return Settlement{}, err
			}
			if err := e.sales.DeleteSoldByItemTx(ctx, tx, item.ID); err != nil {
				return Settlement{}, err
			}
		case errors.Is(perr, sql.ErrNoRows):
			// first settlement for this item
		default:
			return Settlement{}, perr
		}
		if err := e.teams.DebitTx(ctx, tx, highest.TeamName, highest.Amount); err != nil {
			return Settlement{}, err
		}
		if err := e.items.SetWinnerTx(ctx, tx, item.ID, highest.TeamName); err != nil {
			return Settlement{}, err
		}
		if err := e.sales.InsertSoldTx(ctx, tx, model.SoldItem{
			ItemID:      item.ID,
			ItemName:    item.Name,
			SoldAmount:  highest.Amount,
			Rating:      item.Rating,
			Category:    item.Category,
			Nationality: item.Nationality,
			TeamName:    highest.TeamName,
		}); err != nil {
			return Settlement{}, err
		}
		if err := e.sales.DeleteUnsoldByItemTx(ctx, tx, item.ID); err != nil {
			return Settlement{}, err
		}
		result.Sold = true
		result.TeamName = highest.TeamName
		result.Amount = highest.Amount
	case errors.Is(err, sql.ErrNoRows):
		// no bids: leave winner_team untouched, just deactivate below
	default:
		return Settlement{}, err
	}

	if err := e.items.DeactivateTx(ctx, tx, item.ID); err != nil {
		return Settlement{}, err
	}
	if err := tx.Commit(); err != nil {
		return Settlement{}, err
	}
	committed = true

	if result.Sold && e.events != nil {
		ev := queue.ItemSoldEvent{
			ItemID:          item.ID,
			ItemName:        item.Name,
			TeamName:        result.TeamName,
			Amount:          result.Amount,
			Rating:          item.Rating,
			Category:        item.Category,
			FormattedAmount: FormatAmount(result.Amount),
		}
		if err := e.events.PublishItemSold(ctx, ev); err != nil {
			log.Printf("auction: publish sold event failed: %v", err)
		}
	}
	return result, nil
}

// MarkUnsold force-resolves an item as unsold regardless of whether it
// is active or has bids.  The winner is set to the UNSOLD sentinel, the
// item deactivates, unsold_at is stamped and exactly one unsold
// snapshot remains afterwards — calling it twice only refreshes the
// timestamp.
func (e *Engine) MarkUnsold(ctx context.Context, itemID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	item, err := e.items.GetByIDTx(ctx, tx, itemID)
	if err != nil {
		return err
	}
	if err := e.items.MarkUnsoldTx(ctx, tx, itemID); err != nil {
		return err
	}
	if err := e.sales.DeleteUnsoldByItemTx(ctx, tx, itemID); err != nil {
		return err
	}
	if err := e.sales.InsertUnsoldTx(ctx, tx, model.UnsoldItem{
		ItemID:      item.ID,
		ItemName:    item.Name,
		Rating:      item.Rating,
		Category:    item.Category,
		Nationality: item.Nationality,
		Status:      "Unsold",
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	if e.events != nil {
		ev := queue.ItemUnsoldEvent{
			ItemID:   item.ID,
			ItemName: item.Name,
			Rating:   item.Rating,
			Category: item.Category,
		}
		if err := e.events.PublishItemUnsold(ctx, ev); err != nil {
			log.Printf("auction: publish unsold event failed: %v", err)
		}
	}
	return nil
}

// DeleteItem removes an item together with its bids and history
// snapshots, all keyed by the item's id.
func (e *Engine) DeleteItem(ctx context.Context, itemID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := e.bids.DeleteByItemTx(ctx, tx, itemID); err != nil {
		return err
	}
	if err := e.sales.DeleteSoldByItemTx(ctx, tx, itemID); err != nil {
		return err
	}
	if err := e.sales.DeleteUnsoldByItemTx(ctx, tx, itemID); err != nil {
		return err
	}
	if err := e.items.DeleteTx(ctx, tx, itemID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SquadInfoFor aggregates a team's squad metrics from current state.
// Pure read; no mutation.
func (e *Engine) SquadInfoFor(ctx context.Context, teamName string) (SquadInfo, error) {
	team, err := e.teams.GetByName(ctx, teamName)
	if err != nil {
		return SquadInfo{}, err
	}
	players, err := e.items.ListByWinner(ctx, team.Name)
	if err != nil {
		return SquadInfo{}, err
	}
	amounts, err := e.sales.SoldAmountsByTeam(ctx, team.Name)
	if err != nil {
		return SquadInfo{}, err
	}
	return BuildSquadInfo(players, amounts, team.BudgetRemaining), nil
}
