package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SprintRecord is appended when a sprint is ended. Totals holds the closing
// team-overview snapshot as JSON, taken in the same transaction that clears
// the investments.
type SprintRecord struct {
	ID      uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Number  int            `gorm:"column:number;not null" json:"number"`
	EndedAt time.Time      `gorm:"column:ended_at;not null" json:"ended_at"`
	Totals  datatypes.JSON `gorm:"column:totals" json:"totals"`
}

func (s *SprintRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
