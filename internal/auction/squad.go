package auction

import "github.com/iliyamo/live-auction/internal/model"

// SquadInfo is the read-only projection of a team's squad: every item
// whose winner is the team, with spend, rating and composition tallies.
type SquadInfo struct {
	TotalSpent         int64 `json:"total_spent"`
	TotalRating        int64 `json:"total_rating"`
	RemainingBudget    int64 `json:"remaining_budget"`
	NumBatsmen         int   `json:"num_batsmen"`
	NumBowlers         int   `json:"num_bowlers"`
	NumAllrounders     int   `json:"num_allrounders"`
	NumWicketkeepers   int   `json:"num_wicketkeepers"`
	NumIndianPlayers   int   `json:"num_indian_players"`
	NumForeignPlayers  int   `json:"num_foreign_players"`
	TotalPlayersBought int   `json:"total_players_bought"`
}

// BuildSquadInfo aggregates squad metrics from the items a team has
// won.  soldAmounts maps item id to the settled amount; items missing
// from the map (settled rows corrected away) contribute no spend.
// Nationality is tallied as Indian vs foreign, matching the dashboard's
// overseas-player limit display.
func BuildSquadInfo(players []model.Item, soldAmounts map[uint64]int64, remainingBudget int64) SquadInfo {
	info := SquadInfo{
		RemainingBudget:    remainingBudget,
		TotalPlayersBought: len(players),
	}
	for _, p := range players {
		info.TotalRating += int64(p.Rating)
		if amount, ok := soldAmounts[p.ID]; ok {
			info.TotalSpent += amount
		}
		switch p.Category {
		case model.CategoryBatsman:
			info.NumBatsmen++
		case model.CategoryBowler:
			info.NumBowlers++
		case model.CategoryAllrounder:
			info.NumAllrounders++
		case model.CategoryWicketkeeper:
			info.NumWicketkeepers++
		}
		if p.Nationality == "India" {
			info.NumIndianPlayers++
		} else {
			info.NumForeignPlayers++
		}
	}
	return info
}
