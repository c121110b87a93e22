package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

func TestTaxonomyService_CreateCategory(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	svc := NewTaxonomyService(db)

	t.Run("creates with prefixed id", func(t *testing.T) {
		category, err := svc.CreateCategory(&models.CreateCategoryRequest{Name: "Beauty"})
		assert.NoError(t, err)
		assert.Contains(t, category.CategoryID, "cat_")
		assert.Equal(t, "Beauty", category.Name)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := svc.CreateCategory(&models.CreateCategoryRequest{Name: "Beauty"})
		assert.ErrorIs(t, err, models.ErrDuplicateName)
	})

	t.Run("uniqueness is case-sensitive", func(t *testing.T) {
		_, err := svc.CreateCategory(&models.CreateCategoryRequest{Name: "beauty"})
		assert.NoError(t, err)
	})

	t.Run("empty name fails validation", func(t *testing.T) {
		_, err := svc.CreateCategory(&models.CreateCategoryRequest{})
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestTaxonomyService_GetAllCategories(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	svc := NewTaxonomyService(db)

	fashion, err := svc.CreateCategory(&models.CreateCategoryRequest{Name: "Fashion"})
	assert.NoError(t, err)
	_, err = svc.CreateCategory(&models.CreateCategoryRequest{Name: "Gaming"})
	assert.NoError(t, err)
	region, err := svc.CreateRegion(&models.CreateRegionRequest{Name: "Jeddah"})
	assert.NoError(t, err)

	influencers := NewInfluencerService(db)
	createTestInfluencer(t, influencers, fashion.CategoryID, region.RegionID, influencerSpec{name: "Sara", username: "sara"})
	createTestInfluencer(t, influencers, fashion.CategoryID, region.RegionID, influencerSpec{name: "Nora", username: "nora"})

	categories, err := svc.GetAllCategories()
	assert.NoError(t, err)
	assert.Len(t, categories, 2)

	// alphabetical, with per-item influencer counts
	assert.Equal(t, "Fashion", categories[0].Name)
	assert.Equal(t, int64(2), categories[0].InfluencerCount)
	assert.Equal(t, "Gaming", categories[1].Name)
	assert.Equal(t, int64(0), categories[1].InfluencerCount)
}

func TestTaxonomyService_DeleteCategory(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	svc := NewTaxonomyService(db)

	used, err := svc.CreateCategory(&models.CreateCategoryRequest{Name: "Food"})
	assert.NoError(t, err)
	unused, err := svc.CreateCategory(&models.CreateCategoryRequest{Name: "Travel"})
	assert.NoError(t, err)
	region, err := svc.CreateRegion(&models.CreateRegionRequest{Name: "Dammam"})
	assert.NoError(t, err)

	influencers := NewInfluencerService(db)
	createTestInfluencer(t, influencers, used.CategoryID, region.RegionID, influencerSpec{name: "Chef", username: "chef"})

	t.Run("referenced category refuses deletion", func(t *testing.T) {
		err := svc.DeleteCategory(used.CategoryID)
		assert.ErrorIs(t, err, models.ErrInUse)
	})

	t.Run("unreferenced category deletes", func(t *testing.T) {
		assert.NoError(t, svc.DeleteCategory(unused.CategoryID))
		categories, err := svc.GetAllCategories()
		assert.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		err := svc.DeleteCategory("cat_missing")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestTaxonomyService_Regions(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	svc := NewTaxonomyService(db)

	region, err := svc.CreateRegion(&models.CreateRegionRequest{Name: "Tabuk"})
	assert.NoError(t, err)
	assert.Contains(t, region.RegionID, "reg_")

	_, err = svc.CreateRegion(&models.CreateRegionRequest{Name: "Tabuk"})
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	regions, err := svc.GetAllRegions()
	assert.NoError(t, err)
	assert.Len(t, regions, 1)
	assert.Equal(t, int64(0), regions[0].InfluencerCount)

	assert.NoError(t, svc.DeleteRegion(region.RegionID))
}
