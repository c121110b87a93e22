package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

// InfluencerService handles influencer-related operations
type InfluencerService struct {
	db *gorm.DB
}

// NewInfluencerService creates a new influencer service
func NewInfluencerService(db *gorm.DB) *InfluencerService {
	return &InfluencerService{db: db}
}

// CreateInfluencer creates a new influencer
func (s *InfluencerService) CreateInfluencer(req *models.CreateInfluencerRequest) (*models.InfluencerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(&req.CategoryID, &req.RegionID); err != nil {
		return nil, err
	}

	influencer := models.Influencer{
		InfluencerID:    "inf_" + uuid.New().String(),
		Name:            req.Name,
		Username:        req.Username,
		Platforms:       models.StringList(req.Platforms),
		CategoryID:      req.CategoryID,
		RegionID:        req.RegionID,
		Gender:          req.Gender,
		PhoneNumber:     req.PhoneNumber,
		AdvertisingRate: req.AdvertisingRate,
		FollowersCount:  req.FollowersCount,
		Notes:           req.Notes,
	}

	if err := s.db.Create(&influencer).Error; err != nil {
		return nil, fmt.Errorf("failed to create influencer: %w", err)
	}

	if err := s.db.Preload("Category").Preload("Region").
		First(&influencer, "influencer_id = ?", influencer.InfluencerID).Error; err != nil {
		return nil, fmt.Errorf("failed to load created influencer: %w", err)
	}

	slog.Info("Influencer created successfully", "influencerID", influencer.InfluencerID)

	response := toInfluencerResponse(&influencer)
	return &response, nil
}

// GetInfluencer retrieves an influencer by ID
func (s *InfluencerService) GetInfluencer(influencerID string) (*models.InfluencerResponse, error) {
	var influencer models.Influencer
	err := s.db.Preload("Category").Preload("Region").
		First(&influencer, "influencer_id = ?", influencerID).Error
	if err != nil {
		return nil, err
	}

	response := toInfluencerResponse(&influencer)
	return &response, nil
}

// ListInfluencers returns a filtered, sorted page of influencers.
//
// Platform membership lives in a serialized text column, so it cannot be a
// store predicate. The platform filter runs in memory over all rows matching
// the store predicates, before the page window is applied; total therefore
// always counts the records matching every non-pagination predicate.
func (s *InfluencerService) ListInfluencers(filter *models.InfluencerFilter) (*models.PaginatedInfluencersResponse, error) {
	filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	order := fmt.Sprintf("%s %s", models.SortColumns[filter.SortBy], filter.SortOrder)

	var influencers []models.Influencer
	var total int64

	if len(filter.Platforms) > 0 {
		var matching []models.Influencer
		err := applyInfluencerFilters(s.db.Model(&models.Influencer{}), filter).
			Preload("Category").Preload("Region").
			Order(order).
			Find(&matching).Error
		if err != nil {
			return nil, fmt.Errorf("failed to fetch influencers: %w", err)
		}

		filtered := make([]models.Influencer, 0, len(matching))
		for _, inf := range matching {
			if inf.Platforms.ContainsAny(filter.Platforms) {
				filtered = append(filtered, inf)
			}
		}

		total = int64(len(filtered))
		start := (filter.Page - 1) * filter.Limit
		if start > len(filtered) {
			start = len(filtered)
		}
		end := start + filter.Limit
		if end > len(filtered) {
			end = len(filtered)
		}
		influencers = filtered[start:end]
	} else {
		err := applyInfluencerFilters(s.db.Model(&models.Influencer{}), filter).
			Count(&total).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count influencers: %w", err)
		}

		err = applyInfluencerFilters(s.db.Model(&models.Influencer{}), filter).
			Preload("Category").Preload("Region").
			Order(order).
			Offset((filter.Page - 1) * filter.Limit).
			Limit(filter.Limit).
			Find(&influencers).Error
		if err != nil {
			return nil, fmt.Errorf("failed to fetch influencers: %w", err)
		}
	}

	data := make([]models.InfluencerResponse, 0, len(influencers))
	for i := range influencers {
		data = append(data, toInfluencerResponse(&influencers[i]))
	}

	return &models.PaginatedInfluencersResponse{
		Data: data,
		Pagination: models.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

// UpdateInfluencer applies a partial patch to an existing influencer
func (s *InfluencerService) UpdateInfluencer(influencerID string, req *models.UpdateInfluencerRequest) (*models.InfluencerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var influencer models.Influencer
	if err := s.db.First(&influencer, "influencer_id = ?", influencerID).Error; err != nil {
		return nil, err
	}

	if err := s.checkReferences(req.CategoryID, req.RegionID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		influencer.Name = *req.Name
	}
	if req.Username != nil {
		influencer.Username = *req.Username
	}
	if req.Platforms != nil {
		influencer.Platforms = models.StringList(req.Platforms)
	}
	if req.CategoryID != nil {
		influencer.CategoryID = *req.CategoryID
	}
	if req.RegionID != nil {
		influencer.RegionID = *req.RegionID
	}
	if req.Gender != nil {
		influencer.Gender = *req.Gender
	}
	if req.PhoneNumber != nil {
		influencer.PhoneNumber = req.PhoneNumber
	}
	if req.AdvertisingRate != nil {
		influencer.AdvertisingRate = *req.AdvertisingRate
	}
	if req.FollowersCount != nil {
		influencer.FollowersCount = *req.FollowersCount
	}
	if req.Notes != nil {
		influencer.Notes = req.Notes
	}

	if err := s.db.Save(&influencer).Error; err != nil {
		return nil, fmt.Errorf("failed to update influencer: %w", err)
	}

	if err := s.db.Preload("Category").Preload("Region").
		First(&influencer, "influencer_id = ?", influencerID).Error; err != nil {
		return nil, fmt.Errorf("failed to load updated influencer: %w", err)
	}

	slog.Info("Influencer updated successfully", "influencerID", influencerID)

	response := toInfluencerResponse(&influencer)
	return &response, nil
}

// DeleteInfluencer removes an influencer and its campaign membership rows.
// Campaigns referencing the influencer survive with the member removed.
func (s *InfluencerService) DeleteInfluencer(influencerID string) error {
	var influencer models.Influencer
	if err := s.db.First(&influencer, "influencer_id = ?", influencerID).Error; err != nil {
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to start transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Where("influencer_id = ?", influencerID).
		Delete(&models.CampaignInfluencer{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete campaign memberships: %w", err)
	}

	if err := tx.Delete(&influencer).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete influencer: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Influencer deleted successfully", "influencerID", influencerID)
	return nil
}

// BulkUpdate applies the same patch to a batch of influencers in one
// set-based UPDATE. Missing ids are not an error; the modified-row count is
// reported instead.
func (s *InfluencerService) BulkUpdate(req *models.BulkUpdateRequest) (*models.BulkUpdateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(req.Updates.CategoryID, req.Updates.RegionID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if req.Updates.CategoryID != nil {
		updates["category_id"] = *req.Updates.CategoryID
	}
	if req.Updates.RegionID != nil {
		updates["region_id"] = *req.Updates.RegionID
	}
	if req.Updates.Gender != nil {
		updates["gender"] = *req.Updates.Gender
	}

	result := s.db.Model(&models.Influencer{}).
		Where("influencer_id IN ?", req.IDs).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to bulk update influencers: %w", result.Error)
	}

	slog.Info("Bulk update applied", "requested", len(req.IDs), "updated", result.RowsAffected)

	return &models.BulkUpdateResponse{UpdatedCount: result.RowsAffected}, nil
}

// checkReferences verifies that provided category/region ids exist
func (s *InfluencerService) checkReferences(categoryID, regionID *string) error {
	if categoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "category_id = ?", *categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewValidationError("categoryId", "category not found")
			}
			return fmt.Errorf("failed to resolve category: %w", err)
		}
	}
	if regionID != nil {
		var region models.Region
		if err := s.db.First(&region, "region_id = ?", *regionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewValidationError("regionId", "region not found")
			}
			return fmt.Errorf("failed to resolve region: %w", err)
		}
	}
	return nil
}

// applyInfluencerFilters adds the store-level predicates for a filter.
// Numeric ranges are min-inclusive, max-exclusive.
func applyInfluencerFilters(query *gorm.DB, f *models.InfluencerFilter) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR username LIKE ?", pattern, pattern)
	}
	if len(f.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", f.CategoryIDs)
	}
	if len(f.RegionIDs) > 0 {
		query = query.Where("region_id IN ?", f.RegionIDs)
	}
	if f.Gender != "" {
		query = query.Where("gender = ?", f.Gender)
	}
	if f.MinRate != nil {
		query = query.Where("advertising_rate >= ?", *f.MinRate)
	}
	if f.MaxRate != nil {
		query = query.Where("advertising_rate < ?", *f.MaxRate)
	}
	if f.MinFollowers != nil {
		query = query.Where("followers_count >= ?", *f.MinFollowers)
	}
	if f.MaxFollowers != nil {
		query = query.Where("followers_count < ?", *f.MaxFollowers)
	}
	return query
}

// toInfluencerResponse maps an entity with preloaded references to its
// response shape
func toInfluencerResponse(influencer *models.Influencer) models.InfluencerResponse {
	return models.InfluencerResponse{
		InfluencerID:    influencer.InfluencerID,
		Name:            influencer.Name,
		Username:        influencer.Username,
		Platforms:       influencer.Platforms,
		CategoryID:      influencer.CategoryID,
		CategoryName:    influencer.Category.Name,
		RegionID:        influencer.RegionID,
		RegionName:      influencer.Region.Name,
		Gender:          influencer.Gender,
		PhoneNumber:     influencer.PhoneNumber,
		AdvertisingRate: influencer.AdvertisingRate,
		FollowersCount:  influencer.FollowersCount,
		Notes:           influencer.Notes,
		CreatedAt:       influencer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       influencer.UpdatedAt.Format(time.RFC3339),
	}
}
