package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a sprint company: a backlog theme the team can put points on.
// Price is the cost per share used to derive share quantities; Change is a
// display-only percentage; MarketCap is free text (e.g. "1.2M").
type Company struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Price     float64        `gorm:"column:price;not null" json:"price"`
	Change    float64        `gorm:"column:change" json:"change"`
	MarketCap string         `gorm:"column:market_cap" json:"marketCap"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
