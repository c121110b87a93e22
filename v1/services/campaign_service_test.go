package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

func setupCampaignFixtures(t *testing.T) (*gorm.DB, *CampaignService, []*models.InfluencerResponse) {
	db := SetupSQLiteTestDB(t)
	category, region := seedTaxonomy(t, db)
	influencers := NewInfluencerService(db)

	members := []*models.InfluencerResponse{
		createTestInfluencer(t, influencers, category.CategoryID, region.RegionID, influencerSpec{
			name: "Sara", username: "sara", rate: 2000, followers: 100000,
		}),
		createTestInfluencer(t, influencers, category.CategoryID, region.RegionID, influencerSpec{
			name: "Omar", username: "omar", rate: 3000, followers: 50000,
		}),
	}
	return db, NewCampaignService(db), members
}

func TestCampaignService_CreateCampaign(t *testing.T) {
	_, svc, members := setupCampaignFixtures(t)

	description := "Spring push"
	campaign, err := svc.CreateCampaign(&models.CreateCampaignRequest{
		Title:          "Spring Launch",
		Description:    &description,
		SelectedFields: []string{models.FieldName, models.FieldAdvertisingRate},
		InfluencerIDs:  []string{members[0].InfluencerID, members[1].InfluencerID},
	})
	assert.NoError(t, err)
	assert.Contains(t, campaign.CampaignID, "cmp_")
	assert.Equal(t, int64(2), campaign.InfluencerCount)
	assert.Equal(t, []string{models.FieldName, models.FieldAdvertisingRate}, campaign.SelectedFields)

	t.Run("selected field order is preserved", func(t *testing.T) {
		loaded, err := svc.GetCampaign(campaign.CampaignID)
		assert.NoError(t, err)
		assert.Equal(t, []string{models.FieldName, models.FieldAdvertisingRate}, loaded.SelectedFields)
		assert.Len(t, loaded.Influencers, 2)
	})

	t.Run("vocabulary violation fails", func(t *testing.T) {
		_, err := svc.CreateCampaign(&models.CreateCampaignRequest{
			Title:          "Bad",
			SelectedFields: []string{"email"},
			InfluencerIDs:  []string{members[0].InfluencerID},
		})
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestCampaignService_GetAllCampaigns(t *testing.T) {
	_, svc, members := setupCampaignFixtures(t)

	first, err := svc.CreateCampaign(&models.CreateCampaignRequest{
		Title:          "First",
		SelectedFields: []string{models.FieldName},
		InfluencerIDs:  []string{members[0].InfluencerID},
	})
	assert.NoError(t, err)
	_, err = svc.CreateCampaign(&models.CreateCampaignRequest{
		Title:          "Second",
		SelectedFields: []string{models.FieldName},
		InfluencerIDs:  []string{members[0].InfluencerID, members[1].InfluencerID},
	})
	assert.NoError(t, err)

	campaigns, err := svc.GetAllCampaigns()
	assert.NoError(t, err)
	assert.Len(t, campaigns, 2)

	counts := map[string]int64{}
	for _, c := range campaigns {
		counts[c.Title] = c.InfluencerCount
	}
	assert.Equal(t, int64(1), counts["First"])
	assert.Equal(t, int64(2), counts["Second"])
	_ = first
}

func TestCampaignService_UpdateCampaign(t *testing.T) {
	_, svc, members := setupCampaignFixtures(t)

	campaign, err := svc.CreateCampaign(&models.CreateCampaignRequest{
		Title:          "Original",
		SelectedFields: []string{models.FieldName},
		InfluencerIDs:  []string{members[0].InfluencerID, members[1].InfluencerID},
	})
	assert.NoError(t, err)

	t.Run("title patch leaves membership alone", func(t *testing.T) {
		title := "Renamed"
		updated, err := svc.UpdateCampaign(campaign.CampaignID, &models.UpdateCampaignRequest{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, int64(2), updated.InfluencerCount)
	})

	t.Run("influencer id list replaces membership", func(t *testing.T) {
		updated, err := svc.UpdateCampaign(campaign.CampaignID, &models.UpdateCampaignRequest{
			InfluencerIDs: []string{members[1].InfluencerID},
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), updated.InfluencerCount)
		assert.Equal(t, members[1].InfluencerID, updated.Influencers[0].InfluencerID)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		title := "Nope"
		_, err := svc.UpdateCampaign("cmp_missing", &models.UpdateCampaignRequest{Title: &title})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestCampaignService_DuplicateCampaign(t *testing.T) {
	db, svc, members := setupCampaignFixtures(t)

	original, err := svc.CreateCampaign(&models.CreateCampaignRequest{
		Title:          "Eid Push",
		SelectedFields: []string{models.FieldName, models.FieldFollowersCount},
		InfluencerIDs:  []string{members[0].InfluencerID, members[1].InfluencerID},
	})
	assert.NoError(t, err)

	duplicate, err := svc.DuplicateCampaign(original.CampaignID)
	assert.NoError(t, err)

	assert.NotEqual(t, original.CampaignID, duplicate.CampaignID)
	assert.Equal(t, "Eid Push (Copy)", duplicate.Title)
	assert.Equal(t, original.SelectedFields, duplicate.SelectedFields)
	assert.Equal(t, int64(2), duplicate.InfluencerCount)

	t.Run("copy shares no mutable state with the original", func(t *testing.T) {
		_, err := svc.UpdateCampaign(duplicate.CampaignID, &models.UpdateCampaignRequest{
			InfluencerIDs: []string{members[0].InfluencerID},
		})
		assert.NoError(t, err)

		reloaded, err := svc.GetCampaign(original.CampaignID)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), reloaded.InfluencerCount)
	})

	t.Run("membership rows are independent copies", func(t *testing.T) {
		var total int64
		assert.NoError(t, db.Model(&models.CampaignInfluencer{}).Count(&total).Error)
		assert.Equal(t, int64(3), total)
	})
}

func TestCampaignService_DeleteCampaign(t *testing.T) {
	db, svc, members := setupCampaignFixtures(t)

	campaign, err := svc.CreateCampaign(&models.CreateCampaignRequest{
		Title:          "Short-lived",
		SelectedFields: []string{models.FieldName},
		InfluencerIDs:  []string{members[0].InfluencerID},
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteCampaign(campaign.CampaignID))

	_, err = svc.GetCampaign(campaign.CampaignID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var memberships int64
	assert.NoError(t, db.Model(&models.CampaignInfluencer{}).
		Where("campaign_id = ?", campaign.CampaignID).
		Count(&memberships).Error)
	assert.Equal(t, int64(0), memberships)

	// member influencers survive campaign deletion
	influencers := NewInfluencerService(db)
	_, err = influencers.GetInfluencer(members[0].InfluencerID)
	assert.NoError(t, err)
}
