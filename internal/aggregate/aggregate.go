// Package aggregate computes team-wide investment statistics: per-company
// totals, distinct-investor counts and the derived interest level. The
// backend-aggregated numbers here are the single source of truth for the
// dashboard's team views.
package aggregate

import (
	"agile-exchange-backend/internal/models"

	"github.com/google/uuid"
)

// Interest levels by distinct-investor count.
const (
	InterestHigh   = "High"
	InterestMedium = "Medium"
	InterestLow    = "Low"
)

// CompanyStat is one row of the team overview. JSON matches the
// team-overview endpoint.
type CompanyStat struct {
	CompanyID     uuid.UUID `json:"company_id"`
	CompanyName   string    `json:"company_name"`
	TotalPoints   float64   `json:"total_points_invested"`
	InvestorCount int       `json:"investor_count"`
	InterestLevel string    `json:"interest_level"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change_percentage"`
	MarketCap     string    `json:"market_cap"`
}

// InterestLevel classifies a company's popularity:
// >= 3 investors High, 1-2 Medium, 0 Low.
func InterestLevel(investorCount int) string {
	switch {
	case investorCount >= 3:
		return InterestHigh
	case investorCount >= 1:
		return InterestMedium
	default:
		return InterestLow
	}
}

// Aggregate computes one CompanyStat per company, preserving the input
// company order (chart labels follow it). Companies without investments
// appear with zero totals and InterestLow. The result does not depend on
// the ordering of the investments slice.
func Aggregate(companies []models.Company, investments []models.Investment) []CompanyStat {
	totals := make(map[uuid.UUID]float64, len(companies))
	investors := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(companies))
	for _, inv := range investments {
		totals[inv.CompanyID] += inv.Amount
		set := investors[inv.CompanyID]
		if set == nil {
			set = make(map[uuid.UUID]struct{})
			investors[inv.CompanyID] = set
		}
		set[inv.UserID] = struct{}{}
	}

	stats := make([]CompanyStat, 0, len(companies))
	for _, c := range companies {
		count := len(investors[c.ID])
		stats = append(stats, CompanyStat{
			CompanyID:     c.ID,
			CompanyName:   c.Name,
			TotalPoints:   totals[c.ID],
			InvestorCount: count,
			InterestLevel: InterestLevel(count),
			Price:         c.Price,
			Change:        c.Change,
			MarketCap:     c.MarketCap,
		})
	}
	return stats
}

// Overview summarizes the whole team: distinct investors and points
// invested across all companies.
type Overview struct {
	TotalInvestors      int     `json:"total_investors"`
	TotalPointsInvested float64 `json:"total_points_invested"`
}

// Summarize computes the analytics overview from all investments.
func Summarize(investments []models.Investment) Overview {
	users := make(map[uuid.UUID]struct{})
	var points float64
	for _, inv := range investments {
		users[inv.UserID] = struct{}{}
		points += inv.Amount
	}
	return Overview{
		TotalInvestors:      len(users),
		TotalPointsInvested: points,
	}
}
