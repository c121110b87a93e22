package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

// TaxonomyService handles category and region reference data
type TaxonomyService struct {
	db *gorm.DB
}

// NewTaxonomyService creates a new taxonomy service
func NewTaxonomyService(db *gorm.DB) *TaxonomyService {
	return &TaxonomyService{db: db}
}

// GetAllCategories returns all categories alphabetically with influencer counts
func (s *TaxonomyService) GetAllCategories() ([]models.CategoryResponse, error) {
	var results []models.CategoryResponse
	err := s.db.Model(&models.Category{}).
		Select("categories.category_id, categories.name, COUNT(influencers.influencer_id) AS influencer_count").
		Joins("LEFT JOIN influencers ON influencers.category_id = categories.category_id").
		Group("categories.category_id, categories.name").
		Order("categories.name ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return results, nil
}

// CreateCategory creates a new category; duplicate names conflict
func (s *TaxonomyService) CreateCategory(req *models.CreateCategoryRequest) (*models.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkUniqueName(&models.Category{}, req.Name); err != nil {
		return nil, err
	}

	category := models.Category{
		CategoryID: "cat_" + uuid.New().String(),
		Name:       req.Name,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("Category created successfully", "categoryID", category.CategoryID, "name", category.Name)

	return &models.CategoryResponse{
		CategoryID: category.CategoryID,
		Name:       category.Name,
	}, nil
}

// DeleteCategory removes a category unless influencers still reference it
func (s *TaxonomyService) DeleteCategory(categoryID string) error {
	var category models.Category
	if err := s.db.First(&category, "category_id = ?", categoryID).Error; err != nil {
		return err
	}

	var references int64
	if err := s.db.Model(&models.Influencer{}).
		Where("category_id = ?", categoryID).
		Count(&references).Error; err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if references > 0 {
		return fmt.Errorf("category has %d influencers: %w", references, models.ErrInUse)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	slog.Info("Category deleted successfully", "categoryID", categoryID)
	return nil
}

// GetAllRegions returns all regions alphabetically with influencer counts
func (s *TaxonomyService) GetAllRegions() ([]models.RegionResponse, error) {
	var results []models.RegionResponse
	err := s.db.Model(&models.Region{}).
		Select("regions.region_id, regions.name, COUNT(influencers.influencer_id) AS influencer_count").
		Joins("LEFT JOIN influencers ON influencers.region_id = regions.region_id").
		Group("regions.region_id, regions.name").
		Order("regions.name ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch regions: %w", err)
	}
	return results, nil
}

// CreateRegion creates a new region; duplicate names conflict
func (s *TaxonomyService) CreateRegion(req *models.CreateRegionRequest) (*models.RegionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkUniqueName(&models.Region{}, req.Name); err != nil {
		return nil, err
	}

	region := models.Region{
		RegionID: "reg_" + uuid.New().String(),
		Name:     req.Name,
	}
	if err := s.db.Create(&region).Error; err != nil {
		return nil, fmt.Errorf("failed to create region: %w", err)
	}

	slog.Info("Region created successfully", "regionID", region.RegionID, "name", region.Name)

	return &models.RegionResponse{
		RegionID: region.RegionID,
		Name:     region.Name,
	}, nil
}

// DeleteRegion removes a region unless influencers still reference it
func (s *TaxonomyService) DeleteRegion(regionID string) error {
	var region models.Region
	if err := s.db.First(&region, "region_id = ?", regionID).Error; err != nil {
		return err
	}

	var references int64
	if err := s.db.Model(&models.Influencer{}).
		Where("region_id = ?", regionID).
		Count(&references).Error; err != nil {
		return fmt.Errorf("failed to count region references: %w", err)
	}
	if references > 0 {
		return fmt.Errorf("region has %d influencers: %w", references, models.ErrInUse)
	}

	if err := s.db.Delete(&region).Error; err != nil {
		return fmt.Errorf("failed to delete region: %w", err)
	}

	slog.Info("Region deleted successfully", "regionID", regionID)
	return nil
}

// checkUniqueName enforces case-sensitive name uniqueness for a taxonomy table
func (s *TaxonomyService) checkUniqueName(model interface{}, name string) error {
	err := s.db.Where("name = ?", name).First(model).Error
	if err == nil {
		return models.ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	return nil
}
