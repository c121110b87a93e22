package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

// CampaignService handles campaign-related operations
type CampaignService struct {
	db *gorm.DB
}

// NewCampaignService creates a new campaign service
func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{db: db}
}

// GetAllCampaigns returns all campaigns, newest first, with member counts
func (s *CampaignService) GetAllCampaigns() ([]models.CampaignResponse, error) {
	var campaigns []models.Campaign
	if err := s.db.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch campaigns: %w", err)
	}

	type countRow struct {
		CampaignID string
		Count      int64
	}
	var counts []countRow
	err := s.db.Model(&models.CampaignInfluencer{}).
		Select("campaign_id, COUNT(*) AS count").
		Group("campaign_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count campaign members: %w", err)
	}

	countByID := make(map[string]int64, len(counts))
	for _, row := range counts {
		countByID[row.CampaignID] = row.Count
	}

	responses := make([]models.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		response := toCampaignResponse(&campaigns[i])
		response.InfluencerCount = countByID[campaigns[i].CampaignID]
		responses = append(responses, response)
	}
	return responses, nil
}

// CreateCampaign creates a campaign and its membership rows in one transaction
func (s *CampaignService) CreateCampaign(req *models.CreateCampaignRequest) (*models.CampaignResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	campaign := models.Campaign{
		CampaignID:     "cmp_" + uuid.New().String(),
		Title:          req.Title,
		Description:    req.Description,
		SelectedFields: models.StringList(req.SelectedFields),
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&campaign).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	if err := createMemberships(tx, campaign.CampaignID, req.InfluencerIDs); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Campaign created successfully", "campaignID", campaign.CampaignID, "members", len(req.InfluencerIDs))

	response := toCampaignResponse(&campaign)
	response.InfluencerCount = int64(len(req.InfluencerIDs))
	return &response, nil
}

// GetCampaign retrieves a campaign with its resolved influencer list
func (s *CampaignService) GetCampaign(campaignID string) (*models.CampaignResponse, error) {
	var campaign models.Campaign
	if err := s.db.First(&campaign, "campaign_id = ?", campaignID).Error; err != nil {
		return nil, err
	}

	influencers, err := s.GetCampaignInfluencers(campaignID)
	if err != nil {
		return nil, err
	}

	response := toCampaignResponse(&campaign)
	response.InfluencerCount = int64(len(influencers))
	response.Influencers = make([]models.InfluencerResponse, 0, len(influencers))
	for i := range influencers {
		response.Influencers = append(response.Influencers, toInfluencerResponse(&influencers[i]))
	}
	return &response, nil
}

// GetCampaignInfluencers returns the campaign's members with resolved references
func (s *CampaignService) GetCampaignInfluencers(campaignID string) ([]models.Influencer, error) {
	var influencers []models.Influencer
	err := s.db.
		Joins("JOIN campaign_influencers ci ON ci.influencer_id = influencers.influencer_id").
		Where("ci.campaign_id = ?", campaignID).
		Preload("Category").Preload("Region").
		Order("influencers.name ASC").
		Find(&influencers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaign influencers: %w", err)
	}
	return influencers, nil
}

// UpdateCampaign applies a partial patch; a provided influencer id list
// replaces the membership set transactionally
func (s *CampaignService) UpdateCampaign(campaignID string, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var campaign models.Campaign
	if err := s.db.First(&campaign, "campaign_id = ?", campaignID).Error; err != nil {
		return nil, err
	}

	if req.Title != nil {
		campaign.Title = *req.Title
	}
	if req.Description != nil {
		campaign.Description = req.Description
	}
	if req.SelectedFields != nil {
		campaign.SelectedFields = models.StringList(req.SelectedFields)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Save(&campaign).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	if req.InfluencerIDs != nil {
		if err := tx.Where("campaign_id = ?", campaignID).
			Delete(&models.CampaignInfluencer{}).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to clear campaign memberships: %w", err)
		}
		if err := createMemberships(tx, campaignID, req.InfluencerIDs); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Campaign updated successfully", "campaignID", campaignID)

	return s.GetCampaign(campaignID)
}

// DeleteCampaign removes a campaign and its membership rows
func (s *CampaignService) DeleteCampaign(campaignID string) error {
	var campaign models.Campaign
	if err := s.db.First(&campaign, "campaign_id = ?", campaignID).Error; err != nil {
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

	if err := tx.Where("campaign_id = ?", campaignID).
		Delete(&models.CampaignInfluencer{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete campaign memberships: %w", err)
	}

	if err := tx.Delete(&campaign).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Campaign deleted successfully", "campaignID", campaignID)
	return nil
}

// DuplicateCampaign creates an independent copy of a campaign with the same
// selected fields and membership, title suffixed " (Copy)"
func (s *CampaignService) DuplicateCampaign(campaignID string) (*models.CampaignResponse, error) {
	var original models.Campaign
	if err := s.db.First(&original, "campaign_id = ?", campaignID).Error; err != nil {
		return nil, err
	}

	var memberships []models.CampaignInfluencer
	if err := s.db.Where("campaign_id = ?", campaignID).
		Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch campaign memberships: %w", err)
	}

	selectedFields := make(models.StringList, len(original.SelectedFields))
	copy(selectedFields, original.SelectedFields)

	duplicate := models.Campaign{
		CampaignID:     "cmp_" + uuid.New().String(),
		Title:          original.Title + " (Copy)",
		Description:    original.Description,
		SelectedFields: selectedFields,
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&duplicate).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create campaign copy: %w", err)
	}

	memberIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		memberIDs = append(memberIDs, m.InfluencerID)
	}
	if err := createMemberships(tx, duplicate.CampaignID, memberIDs); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Campaign duplicated successfully", "sourceID", campaignID, "campaignID", duplicate.CampaignID)

	response := toCampaignResponse(&duplicate)
	response.InfluencerCount = int64(len(memberIDs))
	return &response, nil
}

// createMemberships inserts membership rows within the caller's transaction
func createMemberships(tx *gorm.DB, campaignID string, influencerIDs []string) error {
	for _, influencerID := range influencerIDs {
		membership := models.CampaignInfluencer{
			CampaignID:   campaignID,
			InfluencerID: influencerID,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return fmt.Errorf("failed to create campaign membership: %w", err)
		}
	}
	return nil
}

// toCampaignResponse maps a campaign entity to its response shape
func toCampaignResponse(campaign *models.Campaign) models.CampaignResponse {
	return models.CampaignResponse{
		CampaignID:     campaign.CampaignID,
		Title:          campaign.Title,
		Description:    campaign.Description,
		SelectedFields: campaign.SelectedFields,
		CreatedAt:      campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      campaign.UpdatedAt.Format(time.RFC3339),
	}
}
