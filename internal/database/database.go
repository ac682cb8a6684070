package database

import (
	"agile-exchange-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from a Postgres DSN.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Investment{},
		&models.SprintRecord{},
	)
}

// SeedCompanies inserts the default sprint companies when the table is
// empty, so a fresh install has something to invest in.
func SeedCompanies(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Company{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := []models.Company{
		{Name: "Team Collaboration", Price: 25.40, Change: 2.5, MarketCap: "1.2M"},
		{Name: "Code Quality", Price: 31.75, Change: -1.2, MarketCap: "2.8M"},
		{Name: "Documentation", Price: 15.20, Change: 4.7, MarketCap: "950K"},
		{Name: "Test Coverage", Price: 42.10, Change: 0.8, MarketCap: "3.4M"},
		{Name: "Customer Satisfaction", Price: 67.25, Change: 6.2, MarketCap: "5.1M"},
		{Name: "On-time Delivery", Price: 28.90, Change: -2.1, MarketCap: "1.7M"},
		{Name: "Technical Debt", Price: 12.30, Change: -3.5, MarketCap: "780K"},
		{Name: "Innovation", Price: 49.75, Change: 5.3, MarketCap: "4.2M"},
	}
	return db.Create(&defaults).Error
}
