package companies

import (
	"context"
	"errors"

	"agile-exchange-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("Company not found")
	ErrNamePriceNeeded = errors.New("Please provide a name and a valid price")
)

type Service struct {
	DB *gorm.DB
}

// CreateInput matches the client body {name, price, change, marketCap}.
type CreateInput struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	MarketCap string  `json:"marketCap"`
}

// UpdateInput carries only the fields to change.
type UpdateInput struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	Change    *float64 `json:"change"`
	MarketCap *string  `json:"marketCap"`
}

// List returns all companies in creation order (chart label order follows it).
func (s *Service) List(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&companies).Error
	return companies, err
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Company, error) {
	if input.Name == "" || input.Price <= 0 {
		return nil, ErrNamePriceNeeded
	}
	company := models.Company{
		Name:      input.Name,
		Price:     input.Price,
		Change:    input.Change,
		MarketCap: input.MarketCap,
	}
	if err := s.DB.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Company, error) {
	var company models.Company
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNamePriceNeeded
		}
		company.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, ErrNamePriceNeeded
		}
		company.Price = *input.Price
	}
	if input.Change != nil {
		company.Change = *input.Change
	}
	if input.MarketCap != nil {
		company.MarketCap = *input.MarketCap
	}
	if err := s.DB.WithContext(ctx).Save(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// Delete removes the company and, in the same transaction, every
// investment referencing it, so no portfolio row can dangle.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.Where("id = ?", id).First(&company).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}
		if err := tx.Where("company_id = ?", id).Delete(&models.Investment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&company).Error
	})
}
