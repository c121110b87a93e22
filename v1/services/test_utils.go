package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

// SetupSQLiteTestDB creates an in-memory SQLite database for testing
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}

	// Auto-migrate all models
	err = db.AutoMigrate(
		&models.Category{},
		&models.Region{},
		&models.Influencer{},
		&models.Campaign{},
		&models.CampaignInfluencer{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	CleanupTestData(t, db)

	return db
}

// CleanupTestData removes all test data from the database
// Exported for use in handler tests
func CleanupTestData(t *testing.T, db *gorm.DB) {
	// Delete in reverse order of dependencies
	if err := db.Exec("DELETE FROM campaign_influencers").Error; err != nil {
		t.Logf("Warning: failed to cleanup campaign_influencers: %v", err)
	}
	if err := db.Exec("DELETE FROM campaigns").Error; err != nil {
		t.Logf("Warning: failed to cleanup campaigns: %v", err)
	}
	if err := db.Exec("DELETE FROM influencers").Error; err != nil {
		t.Logf("Warning: failed to cleanup influencers: %v", err)
	}
	if err := db.Exec("DELETE FROM categories").Error; err != nil {
		t.Logf("Warning: failed to cleanup categories: %v", err)
	}
	if err := db.Exec("DELETE FROM regions").Error; err != nil {
		t.Logf("Warning: failed to cleanup regions: %v", err)
	}
}
