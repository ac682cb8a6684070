package aggregate

import (
	"testing"

	"agile-exchange-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestLevel(t *testing.T) {
	assert.Equal(t, InterestLow, InterestLevel(0))
	assert.Equal(t, InterestMedium, InterestLevel(1))
	assert.Equal(t, InterestMedium, InterestLevel(2))
	assert.Equal(t, InterestHigh, InterestLevel(3))
	assert.Equal(t, InterestHigh, InterestLevel(7))
}

func TestAggregate(t *testing.T) {
	companies := []models.Company{
		{ID: uuid.New(), Name: "Code Quality", Price: 31.75, Change: -1.2, MarketCap: "2.8M"},
		{ID: uuid.New(), Name: "Documentation", Price: 15.20, Change: 4.7, MarketCap: "950K"},
		{ID: uuid.New(), Name: "Innovation", Price: 49.75, Change: 5.3, MarketCap: "4.2M"},
		{ID: uuid.New(), Name: "Technical Debt", Price: 12.30, Change: -3.5, MarketCap: "780K"},
	}
	x := companies[0].ID
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()

	investments := []models.Investment{
		{UserID: u1, CompanyID: x, Amount: 30},
		{UserID: u2, CompanyID: x, Amount: 40},
		{UserID: u3, CompanyID: x, Amount: 20},
		{UserID: u2, CompanyID: companies[1].ID, Amount: 15},
	}

	stats := Aggregate(companies, investments)
	require.Len(t, stats, 4)

	assert.Equal(t, "Code Quality", stats[0].CompanyName)
	assert.Equal(t, 90.0, stats[0].TotalPoints)
	assert.Equal(t, 3, stats[0].InvestorCount)
	assert.Equal(t, InterestHigh, stats[0].InterestLevel)

	assert.Equal(t, 15.0, stats[1].TotalPoints)
	assert.Equal(t, 1, stats[1].InvestorCount)
	assert.Equal(t, InterestMedium, stats[1].InterestLevel)

	// Untouched companies still appear, with zero defaults.
	assert.Equal(t, 0.0, stats[2].TotalPoints)
	assert.Equal(t, 0, stats[2].InvestorCount)
	assert.Equal(t, InterestLow, stats[2].InterestLevel)
}

func TestAggregate_DistinctInvestorsNotEntries(t *testing.T) {
	c := models.Company{ID: uuid.New(), Name: "Test Coverage", Price: 42.10}
	u := uuid.New()
	investments := []models.Investment{
		{UserID: u, CompanyID: c.ID, Amount: 10},
		{UserID: u, CompanyID: c.ID, Amount: 25},
	}
	stats := Aggregate([]models.Company{c}, investments)
	require.Len(t, stats, 1)
	assert.Equal(t, 35.0, stats[0].TotalPoints)
	assert.Equal(t, 1, stats[0].InvestorCount)
	assert.Equal(t, InterestMedium, stats[0].InterestLevel)
}

// Same inputs in a different investment order produce identical output;
// company order drives row order.
func TestAggregate_Deterministic(t *testing.T) {
	companies := []models.Company{
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
	}
	u1, u2 := uuid.New(), uuid.New()
	investments := []models.Investment{
		{UserID: u1, CompanyID: companies[0].ID, Amount: 10},
		{UserID: u2, CompanyID: companies[1].ID, Amount: 20},
		{UserID: u2, CompanyID: companies[0].ID, Amount: 5},
	}
	reversed := []models.Investment{investments[2], investments[1], investments[0]}

	assert.Equal(t, Aggregate(companies, investments), Aggregate(companies, reversed))
	assert.Equal(t, "A", Aggregate(companies, investments)[0].CompanyName)
}

func TestSummarize(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	c1, c2 := uuid.New(), uuid.New()
	investments := []models.Investment{
		{UserID: u1, CompanyID: c1, Amount: 30},
		{UserID: u1, CompanyID: c2, Amount: 20},
		{UserID: u2, CompanyID: c1, Amount: 40},
	}
	ov := Summarize(investments)
	assert.Equal(t, 2, ov.TotalInvestors)
	assert.Equal(t, 90.0, ov.TotalPointsInvested)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.TotalInvestors)
	assert.Equal(t, 0.0, empty.TotalPointsInvested)
}
