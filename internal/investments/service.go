package investments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agile-exchange-backend/internal/aggregate"
	"agile-exchange-backend/internal/budget"
	"agile-exchange-backend/internal/models"
	"agile-exchange-backend/internal/portfolio"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound    = errors.New("Company not found")
	ErrSubmissionInFlight = errors.New("An investment is already being processed")
)

// BudgetExceededError carries the remaining budget so the handler can
// surface the same message the dashboard shows.
type BudgetExceededError struct {
	Remaining float64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("You only have %g points available to invest", e.Remaining)
}

func (e *BudgetExceededError) Unwrap() error { return budget.ErrBudgetExceeded }

const (
	inFlightPrefix = "invest_inflight:"
	inFlightTTL    = 10 * time.Second
)

type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
	// Ceiling defaults to budget.DefaultCeiling when zero.
	Ceiling float64
}

func (s *Service) ceiling() float64 {
	if s.Ceiling > 0 {
		return s.Ceiling
	}
	return budget.DefaultCeiling
}

// Item is one portfolio row with the company name joined in.
type Item struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Amount      float64   `json:"amount"`
	Shares      float64   `json:"shares"`
	CreatedAt   time.Time `json:"created_at"`
	CompanyName string    `json:"company_name"`
}

// Invest records points against a company for one user. The budget check
// and the write happen in a single transaction, so a submission that would
// push the user past the ceiling is rejected with nothing applied. A
// per-user Redis guard serializes submissions: a second one while the
// first is outstanding gets ErrSubmissionInFlight instead of a double
// write.
func (s *Service) Invest(ctx context.Context, userID, companyID uuid.UUID, amount float64) (*models.Investment, error) {
	if s.Rdb != nil {
		ok, err := s.Rdb.SetNX(ctx, inFlightPrefix+userID.String(), 1, inFlightTTL).Result()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSubmissionInFlight
		}
		defer s.Rdb.Del(context.WithoutCancel(ctx), inFlightPrefix+userID.String())
	}

	var result *models.Investment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.Where("id = ?", companyID).First(&company).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}

		var rows []models.Investment
		if err := tx.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			return err
		}

		entries := make([]budget.Entry, 0, len(rows))
		for _, r := range rows {
			entries = append(entries, budget.Entry{CompanyID: r.CompanyID, Amount: r.Amount, Shares: r.Shares})
		}
		updated, err := budget.Record(entries, companyID, amount, company.Price, s.ceiling())
		if err != nil {
			if errors.Is(err, budget.ErrBudgetExceeded) {
				rem, _ := budget.Remaining(entries, s.ceiling())
				return &BudgetExceededError{Remaining: rem}
			}
			return err
		}

		var pos budget.Entry
		for _, e := range updated {
			if e.CompanyID == companyID {
				pos = e
				break
			}
		}

		for i := range rows {
			if rows[i].CompanyID == companyID {
				rows[i].Amount = pos.Amount
				rows[i].Shares = pos.Shares
				if err := tx.Save(&rows[i]).Error; err != nil {
					return err
				}
				result = &rows[i]
				return nil
			}
		}

		row := models.Investment{
			UserID:    userID,
			CompanyID: companyID,
			Amount:    pos.Amount,
			Shares:    pos.Shares,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		result = &row
		return nil
	})
	return result, err
}

// Portfolio returns the user's positions with company names, oldest first.
func (s *Service) Portfolio(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	var items []Item
	err := s.DB.WithContext(ctx).
		Table("investments").
		Select("investments.id, investments.user_id, investments.company_id, investments.amount, investments.shares, investments.created_at, companies.name AS company_name").
		Joins("JOIN companies ON companies.id = investments.company_id AND companies.deleted_at IS NULL").
		Where("investments.user_id = ?", userID).
		Order("investments.created_at ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// ChartView is the server-rendered pie series for the user's portfolio.
type ChartView struct {
	Labels      []string  `json:"labels"`
	Values      []float64 `json:"values"`
	Colors      []string  `json:"colors"`
	Percentages []string  `json:"percentages"`
	Remaining   float64   `json:"remaining"`
}

// Chart derives the chart series and per-slice percentages from the
// current ledger state.
func (s *Service) Chart(ctx context.Context, userID uuid.UUID) (*ChartView, error) {
	items, err := s.Portfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	slices := make([]portfolio.Slice, 0, len(items))
	var invested float64
	for _, it := range items {
		slices = append(slices, portfolio.Slice{Name: it.CompanyName, Amount: it.Amount})
		invested += it.Amount
	}
	series, err := portfolio.ChartSeries(slices, s.ceiling())
	if err != nil {
		return nil, err
	}
	percentages := make([]string, 0, len(series.Values))
	for _, v := range series.Values {
		p, err := portfolio.Percentage(v, s.ceiling())
		if err != nil {
			return nil, err
		}
		percentages = append(percentages, p)
	}
	return &ChartView{
		Labels:      series.Labels,
		Values:      series.Values,
		Colors:      series.Colors,
		Percentages: percentages,
		Remaining:   s.ceiling() - invested,
	}, nil
}

// Analytics summarizes team-wide activity.
func (s *Service) Analytics(ctx context.Context) (*aggregate.Overview, error) {
	var rows []models.Investment
	if err := s.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	ov := aggregate.Summarize(rows)
	return &ov, nil
}

// TeamOverview computes the per-company stats for the manager views.
func (s *Service) TeamOverview(ctx context.Context) ([]aggregate.CompanyStat, error) {
	var companies []models.Company
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	var rows []models.Investment
	if err := s.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return aggregate.Aggregate(companies, rows), nil
}
