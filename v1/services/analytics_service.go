package services

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

// AnalyticsService produces the fixed aggregate dashboard payload
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// GetAnalytics runs every aggregate and assembles the dashboard payload. Any
// store failure aborts the whole response; no partial payload is returned.
func (s *AnalyticsService) GetAnalytics() (*models.AnalyticsResponse, error) {
	summary, err := s.summary()
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryDistribution()
	if err != nil {
		return nil, err
	}

	genders, err := s.genderDistribution()
	if err != nil {
		return nil, err
	}

	regions, err := s.regionDistribution()
	if err != nil {
		return nil, err
	}

	platforms, err := s.platformDistribution()
	if err != nil {
		return nil, err
	}

	prices, err := s.histogram("advertising_rate", models.RateBuckets)
	if err != nil {
		return nil, err
	}

	followers, err := s.histogram("followers_count", models.FollowerBuckets)
	if err != nil {
		return nil, err
	}

	return &models.AnalyticsResponse{
		Summary:              *summary,
		CategoryDistribution: categories,
		GenderDistribution:   genders,
		RegionDistribution:   regions,
		PlatformDistribution: platforms,
		PriceDistribution:    prices,
		FollowerDistribution: followers,
	}, nil
}

func (s *AnalyticsService) summary() (*models.AnalyticsSummary, error) {
	var summary models.AnalyticsSummary

	if err := s.db.Model(&models.Influencer{}).
		Count(&summary.TotalInfluencers).Error; err != nil {
		return nil, fmt.Errorf("failed to count influencers: %w", err)
	}

	if err := s.db.Model(&models.Campaign{}).
		Count(&summary.TotalCampaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}

	// COALESCE keeps the zero-row case a defined 0 rather than NULL
	row := struct {
		TotalFollowers int64
		AverageRate    float64
	}{}
	err := s.db.Model(&models.Influencer{}).
		Select("COALESCE(SUM(followers_count), 0) AS total_followers, COALESCE(AVG(advertising_rate), 0) AS average_rate").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate influencers: %w", err)
	}

	summary.TotalFollowers = row.TotalFollowers
	summary.AverageAdvertisingRate = row.AverageRate
	return &summary, nil
}

func (s *AnalyticsService) categoryDistribution() ([]models.DistributionEntry, error) {
	var entries []models.DistributionEntry
	err := s.db.Model(&models.Category{}).
		Select("categories.category_id AS id, categories.name, COUNT(influencers.influencer_id) AS count").
		Joins("LEFT JOIN influencers ON influencers.category_id = categories.category_id").
		Group("categories.category_id, categories.name").
		Order("count DESC, categories.name ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	return entries, nil
}

func (s *AnalyticsService) regionDistribution() ([]models.DistributionEntry, error) {
	var entries []models.DistributionEntry
	err := s.db.Model(&models.Region{}).
		Select("regions.region_id AS id, regions.name, COUNT(influencers.influencer_id) AS count").
		Joins("LEFT JOIN influencers ON influencers.region_id = regions.region_id").
		Group("regions.region_id, regions.name").
		Order("count DESC, regions.name ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate regions: %w", err)
	}
	return entries, nil
}

func (s *AnalyticsService) genderDistribution() ([]models.GenderCount, error) {
	var entries []models.GenderCount
	err := s.db.Model(&models.Influencer{}).
		Select("gender, COUNT(*) AS count").
		Group("gender").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate genders: %w", err)
	}
	return entries, nil
}

// platformDistribution is the one aggregate the store cannot group: platform
// membership lives in a serialized text column, so every influencer's list is
// read and counted in memory.
func (s *AnalyticsService) platformDistribution() ([]models.DistributionEntry, error) {
	var rows []models.Influencer
	err := s.db.Model(&models.Influencer{}).
		Select("platforms").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch influencer platforms: %w", err)
	}

	counts := make(map[string]int64)
	for _, row := range rows {
		for _, platform := range row.Platforms {
			counts[platform]++
		}
	}

	entries := make([]models.DistributionEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, models.DistributionEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// histogram counts rows per bucket; buckets are min-inclusive, max-exclusive,
// with Max < 0 marking an open upper bound
func (s *AnalyticsService) histogram(column string, buckets []models.RangeBucket) ([]models.BucketCount, error) {
	results := make([]models.BucketCount, 0, len(buckets))
	for _, bucket := range buckets {
		query := s.db.Model(&models.Influencer{}).
			Where(fmt.Sprintf("%s >= ?", column), bucket.Min)
		if bucket.Max >= 0 {
			query = query.Where(fmt.Sprintf("%s < ?", column), bucket.Max)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s bucket %s: %w", column, bucket.Label, err)
		}
		results = append(results, models.BucketCount{Label: bucket.Label, Count: count})
	}
	return results, nil
}
