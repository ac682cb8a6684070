package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Investment is one user's position in one company. Amount accumulates
// points across repeated investments; Shares accumulates amount/price at
// the price in effect for each contribution (never recomputed from the
// total and the current price).
type Investment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_company" json:"user_id"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_user_company" json:"company_id"`
	Amount    float64   `gorm:"column:amount;not null" json:"amount"`
	Shares    float64   `gorm:"column:shares;not null" json:"shares"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
