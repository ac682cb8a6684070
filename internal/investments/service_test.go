package investments

import (
	"context"
	"testing"

	"agile-exchange-backend/internal/aggregate"
	"agile-exchange-backend/internal/budget"
	"agile-exchange-backend/internal/models"
	"agile-exchange-backend/internal/portfolio"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Company{}, &models.Investment{}))
	return &Service{DB: db, Rdb: rdb}, db, rdb
}

func seedCompany(t *testing.T, db *gorm.DB, name string, price float64) *models.Company {
	c := models.Company{Name: name, Price: price, MarketCap: "1.0M"}
	require.NoError(t, db.Create(&c).Error)
	return &c
}

func TestInvest_FirstInvestment(t *testing.T) {
	svc, db, _ := setupService(t)
	company := seedCompany(t, db, "Team Collaboration", 25.40)
	userID := uuid.New()

	inv, err := svc.Invest(context.Background(), userID, company.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40.0, inv.Amount)
	assert.InDelta(t, 40/25.40, inv.Shares, 1e-12)
}

func TestInvest_TopUpAccumulatesShares(t *testing.T) {
	svc, db, _ := setupService(t)
	company := seedCompany(t, db, "Team Collaboration", 25.40)
	userID := uuid.New()

	_, err := svc.Invest(context.Background(), userID, company.ID, 40)
	require.NoError(t, err)
	inv, err := svc.Invest(context.Background(), userID, company.ID, 10)
	require.NoError(t, err)

	assert.Equal(t, 50.0, inv.Amount)
	assert.InDelta(t, 40/25.40+10/25.40, inv.Shares, 1e-12)

	// Still a single row for the (user, company) pair.
	var count int64
	require.NoError(t, db.Model(&models.Investment{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestInvest_BudgetExceededLeavesLedgerUnchanged(t *testing.T) {
	svc, db, _ := setupService(t)
	a := seedCompany(t, db, "Code Quality", 31.75)
	b := seedCompany(t, db, "Innovation", 49.75)
	userID := uuid.New()

	_, err := svc.Invest(context.Background(), userID, a.ID, 90)
	require.NoError(t, err)

	_, err = svc.Invest(context.Background(), userID, b.ID, 20)
	var exceeded *BudgetExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.ErrorIs(t, err, budget.ErrBudgetExceeded)
	assert.Equal(t, 10.0, exceeded.Remaining)
	assert.Equal(t, "You only have 10 points available to invest", exceeded.Error())

	var rows []models.Investment
	require.NoError(t, db.Where("user_id = ?", userID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 90.0, rows[0].Amount)
}

func TestInvest_InvalidAmount(t *testing.T) {
	svc, db, _ := setupService(t)
	company := seedCompany(t, db, "Documentation", 15.20)

	_, err := svc.Invest(context.Background(), uuid.New(), company.ID, 0)
	assert.ErrorIs(t, err, budget.ErrInvalidAmount)

	_, err = svc.Invest(context.Background(), uuid.New(), company.ID, -10)
	assert.ErrorIs(t, err, budget.ErrInvalidAmount)
}

func TestInvest_UnknownCompany(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Invest(context.Background(), uuid.New(), uuid.New(), 10)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

// A second submission while one is outstanding is refused and writes
// nothing; only the first call's outcome lands in the ledger.
func TestInvest_SecondSubmissionWhileInFlight(t *testing.T) {
	svc, db, rdb := setupService(t)
	company := seedCompany(t, db, "Test Coverage", 42.10)
	userID := uuid.New()

	_, err := svc.Invest(context.Background(), userID, company.ID, 30)
	require.NoError(t, err)

	// Simulate an outstanding submission holding the guard.
	require.NoError(t, rdb.Set(context.Background(), inFlightPrefix+userID.String(), 1, 0).Err())

	_, err = svc.Invest(context.Background(), userID, company.ID, 10)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	var rows []models.Investment
	require.NoError(t, db.Where("user_id = ?", userID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 30.0, rows[0].Amount)
}

func TestInvest_GuardReleasedAfterCompletion(t *testing.T) {
	svc, db, rdb := setupService(t)
	company := seedCompany(t, db, "Test Coverage", 42.10)
	userID := uuid.New()

	_, err := svc.Invest(context.Background(), userID, company.ID, 30)
	require.NoError(t, err)

	exists, err := rdb.Exists(context.Background(), inFlightPrefix+userID.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}

func TestPortfolio_JoinsCompanyName(t *testing.T) {
	svc, db, _ := setupService(t)
	company := seedCompany(t, db, "On-time Delivery", 28.90)
	userID := uuid.New()

	_, err := svc.Invest(context.Background(), userID, company.ID, 25)
	require.NoError(t, err)

	items, err := svc.Portfolio(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "On-time Delivery", items[0].CompanyName)
	assert.Equal(t, 25.0, items[0].Amount)

	// Other users see their own (empty) portfolio.
	other, err := svc.Portfolio(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestChart_SeriesWithRemainder(t *testing.T) {
	svc, db, _ := setupService(t)
	a := seedCompany(t, db, "Team Collaboration", 25.40)
	b := seedCompany(t, db, "Code Quality", 31.75)
	userID := uuid.New()

	_, err := svc.Invest(context.Background(), userID, a.ID, 30)
	require.NoError(t, err)
	_, err = svc.Invest(context.Background(), userID, b.ID, 20)
	require.NoError(t, err)

	view, err := svc.Chart(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Team Collaboration", "Code Quality", portfolio.UninvestedLabel}, view.Labels)
	assert.Equal(t, []float64{30, 20, 50}, view.Values)
	assert.Equal(t, []string{"30.0", "20.0", "50.0"}, view.Percentages)
	assert.Equal(t, 50.0, view.Remaining)
	require.Len(t, view.Colors, 3)
}

func TestChart_EmptyPortfolio(t *testing.T) {
	svc, _, _ := setupService(t)

	view, err := svc.Chart(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []string{portfolio.UninvestedLabel}, view.Labels)
	assert.Equal(t, []float64{budget.DefaultCeiling}, view.Values)
	assert.Equal(t, budget.DefaultCeiling, view.Remaining)
}

func TestAnalyticsAndTeamOverview(t *testing.T) {
	svc, db, _ := setupService(t)
	x := seedCompany(t, db, "Customer Satisfaction", 67.25)
	y := seedCompany(t, db, "Technical Debt", 12.30)
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()

	for _, inv := range []struct {
		user   uuid.UUID
		amount float64
	}{{u1, 30}, {u2, 40}, {u3, 20}} {
		_, err := svc.Invest(context.Background(), inv.user, x.ID, inv.amount)
		require.NoError(t, err)
	}

	ov, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ov.TotalInvestors)
	assert.Equal(t, 90.0, ov.TotalPointsInvested)

	stats, err := svc.TeamOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, x.ID, stats[0].CompanyID)
	assert.Equal(t, 90.0, stats[0].TotalPoints)
	assert.Equal(t, 3, stats[0].InvestorCount)
	assert.Equal(t, aggregate.InterestHigh, stats[0].InterestLevel)
	assert.Equal(t, y.ID, stats[1].CompanyID)
	assert.Equal(t, aggregate.InterestLow, stats[1].InterestLevel)
}
