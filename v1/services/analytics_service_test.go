package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

func TestAnalyticsService_GetAnalytics_EmptyStore(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	svc := NewAnalyticsService(db)

	analytics, err := svc.GetAnalytics()
	assert.NoError(t, err)

	// zero rows report a defined 0 average, not NaN or an error
	assert.Equal(t, int64(0), analytics.Summary.TotalInfluencers)
	assert.Equal(t, int64(0), analytics.Summary.TotalCampaigns)
	assert.Equal(t, int64(0), analytics.Summary.TotalFollowers)
	assert.Equal(t, 0.0, analytics.Summary.AverageAdvertisingRate)
	assert.Empty(t, analytics.PlatformDistribution)
	assert.Len(t, analytics.PriceDistribution, len(models.RateBuckets))
	assert.Len(t, analytics.FollowerDistribution, len(models.FollowerBuckets))
}

func TestAnalyticsService_GetAnalytics(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	category, region := seedTaxonomy(t, db)
	taxonomy := NewTaxonomyService(db)
	gaming, err := taxonomy.CreateCategory(&models.CreateCategoryRequest{Name: "Gaming"})
	assert.NoError(t, err)

	influencers := NewInfluencerService(db)
	sara := createTestInfluencer(t, influencers, category.CategoryID, region.RegionID, influencerSpec{
		name: "Sara", username: "sara", gender: models.GenderFemale,
		platforms: []string{"Instagram", "TikTok"}, rate: 500, followers: 5000,
	})
	createTestInfluencer(t, influencers, category.CategoryID, region.RegionID, influencerSpec{
		name: "Nora", username: "nora", gender: models.GenderFemale,
		platforms: []string{"Instagram"}, rate: 1000, followers: 50000,
	})
	createTestInfluencer(t, influencers, gaming.CategoryID, region.RegionID, influencerSpec{
		name: "Omar", username: "omar", gender: models.GenderMale,
		platforms: []string{"Twitch"}, rate: 7500, followers: 2000000,
	})

	campaigns := NewCampaignService(db)
	_, err = campaigns.CreateCampaign(&models.CreateCampaignRequest{
		Title:          "Launch",
		SelectedFields: []string{models.FieldName},
		InfluencerIDs:  []string{},
	})
	assert.Error(t, err) // campaigns require members
	_, err = campaigns.CreateCampaign(&models.CreateCampaignRequest{
		Title:          "Launch",
		SelectedFields: []string{models.FieldName},
		InfluencerIDs:  []string{sara.InfluencerID},
	})
	assert.NoError(t, err)

	analytics, err := NewAnalyticsService(db).GetAnalytics()
	assert.NoError(t, err)

	t.Run("summary", func(t *testing.T) {
		assert.Equal(t, int64(3), analytics.Summary.TotalInfluencers)
		assert.Equal(t, int64(1), analytics.Summary.TotalCampaigns)
		assert.Equal(t, int64(2055000), analytics.Summary.TotalFollowers)
		assert.InDelta(t, 3000.0, analytics.Summary.AverageAdvertisingRate, 0.001)
	})

	t.Run("category distribution is count-descending", func(t *testing.T) {
		assert.Len(t, analytics.CategoryDistribution, 2)
		assert.Equal(t, "Lifestyle", analytics.CategoryDistribution[0].Name)
		assert.Equal(t, int64(2), analytics.CategoryDistribution[0].Count)
		assert.Equal(t, int64(1), analytics.CategoryDistribution[1].Count)
	})

	t.Run("gender distribution", func(t *testing.T) {
		counts := map[models.Gender]int64{}
		for _, g := range analytics.GenderDistribution {
			counts[g.Gender] = g.Count
		}
		assert.Equal(t, int64(2), counts[models.GenderFemale])
		assert.Equal(t, int64(1), counts[models.GenderMale])
	})

	t.Run("platform distribution counts serialized lists", func(t *testing.T) {
		assert.Equal(t, "Instagram", analytics.PlatformDistribution[0].Name)
		assert.Equal(t, int64(2), analytics.PlatformDistribution[0].Count)
		assert.Len(t, analytics.PlatformDistribution, 3)
	})

	t.Run("price histogram buckets are min-inclusive max-exclusive", func(t *testing.T) {
		counts := map[string]int64{}
		for _, b := range analytics.PriceDistribution {
			counts[b.Label] = b.Count
		}
		// 500 -> 0-1000; 1000 sits in 1000-5000, not 0-1000; 7500 -> 5000-10000
		assert.Equal(t, int64(1), counts["0-1000"])
		assert.Equal(t, int64(1), counts["1000-5000"])
		assert.Equal(t, int64(1), counts["5000-10000"])
		assert.Equal(t, int64(0), counts["50000+"])
	})

	t.Run("follower histogram", func(t *testing.T) {
		counts := map[string]int64{}
		for _, b := range analytics.FollowerDistribution {
			counts[b.Label] = b.Count
		}
		assert.Equal(t, int64(1), counts["0-10K"])
		assert.Equal(t, int64(1), counts["10K-100K"])
		assert.Equal(t, int64(1), counts["1M+"])
	})
}

func setupAnalyticsMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	var db *sql.DB
	var mock sqlmock.Sqlmock
	var err error

	db, mock, err = sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func TestAnalyticsService_GetAnalytics_StoreFailureAbortsWholeResponse(t *testing.T) {
	db, mock, cleanup := setupAnalyticsMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count").WillReturnError(errors.New("connection reset"))

	analytics, err := NewAnalyticsService(db).GetAnalytics()
	assert.Error(t, err)
	assert.Nil(t, analytics)
	assert.Contains(t, err.Error(), "failed to count influencers")
}
