package auction

import (
	"testing"

	"github.com/peterldowns/testy/check"

	"github.com/iliyamo/live-auction/internal/model"
)

func squadPlayers() []model.Item {
	return []model.Item{
		{ID: 1, Name: "Opener", Rating: 90, Category: model.CategoryBatsman, Nationality: "India"},
		{ID: 2, Name: "Quick", Rating: 85, Category: model.CategoryBowler, Nationality: "Australia"},
		{ID: 3, Name: "Finisher", Rating: 80, Category: model.CategoryAllrounder, Nationality: "India"},
		{ID: 4, Name: "Gloves", Rating: 75, Category: model.CategoryWicketkeeper, Nationality: "England"},
	}
}

func TestBuildSquadInfo_Aggregates(t *testing.T) {
	amounts := map[uint64]int64{
		1: 20_000_000,
		2: 15_000_000,
		3: 8_000_000,
		4: 6_000_000,
	}
	info := BuildSquadInfo(squadPlayers(), amounts, 51_000_000)

	check.Equal(t, int64(49_000_000), info.TotalSpent)
	check.Equal(t, int64(330), info.TotalRating)
	check.Equal(t, int64(51_000_000), info.RemainingBudget)
	check.Equal(t, 1, info.NumBatsmen)
	check.Equal(t, 1, info.NumBowlers)
	check.Equal(t, 1, info.NumAllrounders)
	check.Equal(t, 1, info.NumWicketkeepers)
	check.Equal(t, 2, info.NumIndianPlayers)
	check.Equal(t, 2, info.NumForeignPlayers)
	check.Equal(t, 4, info.TotalPlayersBought)
}

func TestBuildSquadInfo_MissingSoldAmountContributesNoSpend(t *testing.T) {
	// A corrected sale removes the sold snapshot while the winner field
	// still points at the team; the aggregator must not invent spend.
	amounts := map[uint64]int64{1: 20_000_000}
	info := BuildSquadInfo(squadPlayers(), amounts, 80_000_000)

	check.Equal(t, int64(20_000_000), info.TotalSpent)
	check.Equal(t, 4, info.TotalPlayersBought)
}

func TestBuildSquadInfo_EmptySquad(t *testing.T) {
	info := BuildSquadInfo(nil, nil, 100_000_000)

	check.Equal(t, int64(0), info.TotalSpent)
	check.Equal(t, int64(0), info.TotalRating)
	check.Equal(t, int64(100_000_000), info.RemainingBudget)
	check.Equal(t, 0, info.TotalPlayersBought)
}
