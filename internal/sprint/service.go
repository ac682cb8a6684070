package sprint

import (
	"context"
	"encoding/json"
	"time"

	"agile-exchange-backend/internal/aggregate"
	"agile-exchange-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// End closes the current sprint: snapshot the closing team totals, append a
// SprintRecord and clear every investment, all in one transaction. Clearing
// the ledgers restores every user's budget to the full ceiling. There is no
// partial outcome: either the sprint ends or nothing changes.
func (s *Service) End(ctx context.Context) (*models.SprintRecord, error) {
	var record *models.SprintRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var companies []models.Company
		if err := tx.Order("created_at ASC").Find(&companies).Error; err != nil {
			return err
		}
		var investments []models.Investment
		if err := tx.Find(&investments).Error; err != nil {
			return err
		}
		snapshot, err := json.Marshal(aggregate.Aggregate(companies, investments))
		if err != nil {
			return err
		}

		var last models.SprintRecord
		number := 1
		if err := tx.Order("number DESC").First(&last).Error; err == nil {
			number = last.Number + 1
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		rec := models.SprintRecord{
			Number:  number,
			EndedAt: time.Now(),
			Totals:  datatypes.JSON(snapshot),
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}

		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Investment{}).Error; err != nil {
			return err
		}
		record = &rec
		return nil
	})
	return record, err
}

// History returns past sprint records, most recent first.
func (s *Service) History(ctx context.Context) ([]models.SprintRecord, error) {
	var records []models.SprintRecord
	err := s.DB.WithContext(ctx).Order("number DESC").Find(&records).Error
	return records, err
}
