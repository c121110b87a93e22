package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/shared/monitoring"
	"github.com/influencer-hub/dashboard-backend/shared/utils"
	"github.com/influencer-hub/dashboard-backend/v1/models"
	"github.com/influencer-hub/dashboard-backend/v1/services"
)

// V1Handler handles all V1 API routes
type V1Handler struct {
	influencerService *services.InfluencerService
	taxonomyService   *services.TaxonomyService
	campaignService   *services.CampaignService
	analyticsService  *services.AnalyticsService
	exportService     *services.ExportService
	importService     *services.ImportService
}

// NewV1Handler creates a new V1 handler
func NewV1Handler(db *gorm.DB) (*V1Handler, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return &V1Handler{
		influencerService: services.NewInfluencerService(db),
		taxonomyService:   services.NewTaxonomyService(db),
		campaignService:   services.NewCampaignService(db),
		analyticsService:  services.NewAnalyticsService(db),
		exportService:     services.NewExportService(db),
		importService:     services.NewImportService(db),
	}, nil
}

// SetupV1Routes configures all V1 API routes
func (h *V1Handler) SetupV1Routes(mux *http.ServeMux) {
	// Influencer routes
	mux.Handle("/api/v1/influencers", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleInfluencers)))
	mux.Handle("/api/v1/influencers/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleInfluencers)))

	// Reference-data routes
	mux.Handle("/api/v1/categories", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleCategories)))
	mux.Handle("/api/v1/categories/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleCategories)))
	mux.Handle("/api/v1/regions", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleRegions)))
	mux.Handle("/api/v1/regions/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleRegions)))

	// Campaign routes
	mux.Handle("/api/v1/campaigns", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleCampaigns)))
	mux.Handle("/api/v1/campaigns/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleCampaigns)))

	// Analytics route
	mux.Handle("/api/v1/analytics", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleAnalytics)))

	// Spreadsheet export/import routes
	mux.Handle("/api/v1/export", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleExport)))
	mux.Handle("/api/v1/import", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleImport)))
	mux.Handle("/api/v1/import/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleImport)))
}

// handleInfluencers handles influencer-related routes
func (h *V1Handler) handleInfluencers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/influencers")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/influencers and POST /api/v1/influencers
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listInfluencers(w, r)
		case http.MethodPost:
			h.createInfluencer(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// Handle batch endpoint: PATCH /api/v1/influencers/bulk
	if len(parts) == 1 && parts[0] == "bulk" {
		if r.Method != http.MethodPatch {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.bulkUpdateInfluencers(w, r)
		return
	}

	influencerID := parts[0]

	// Handle specific influencer endpoint: GET/PUT/DELETE /api/v1/influencers/:id
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getInfluencer(w, r, influencerID)
		case http.MethodPut:
			h.updateInfluencer(w, r, influencerID)
		case http.MethodDelete:
			h.deleteInfluencer(w, r, influencerID)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) listInfluencers(w http.ResponseWriter, r *http.Request) {
	filter, err := parseInfluencerFilter(r.URL.Query())
	if err != nil {
		h.respondServiceError(w, err, "Failed to fetch influencers")
		return
	}

	result, err := h.influencerService.ListInfluencers(filter)
	if err != nil {
		h.respondServiceError(w, err, "Failed to fetch influencers")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, result)
}

func (h *V1Handler) createInfluencer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInfluencerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	influencer, err := h.influencerService.CreateInfluencer(&req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to create influencer")
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, influencer)
}

func (h *V1Handler) getInfluencer(w http.ResponseWriter, r *http.Request, influencerID string) {
	influencer, err := h.influencerService.GetInfluencer(influencerID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to fetch influencer")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, influencer)
}

func (h *V1Handler) updateInfluencer(w http.ResponseWriter, r *http.Request, influencerID string) {
	var req models.UpdateInfluencerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	influencer, err := h.influencerService.UpdateInfluencer(influencerID, &req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to update influencer")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, influencer)
}

func (h *V1Handler) deleteInfluencer(w http.ResponseWriter, r *http.Request, influencerID string) {
	if err := h.influencerService.DeleteInfluencer(influencerID); err != nil {
		h.respondServiceError(w, err, "Failed to delete influencer")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, map[string]string{"message": "Influencer deleted"})
}

func (h *V1Handler) bulkUpdateInfluencers(w http.ResponseWriter, r *http.Request) {
	var req models.BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.influencerService.BulkUpdate(&req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to bulk update influencers")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, result)
}

// handleCategories handles category reference-data routes
func (h *V1Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/categories")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			categories, err := h.taxonomyService.GetAllCategories()
			if err != nil {
				h.respondServiceError(w, err, "Failed to fetch categories")
				return
			}
			utils.RespondWithSuccess(w, http.StatusOK, categories)
		case http.MethodPost:
			var req models.CreateCategoryRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			category, err := h.taxonomyService.CreateCategory(&req)
			if err != nil {
				h.respondServiceError(w, err, "Failed to create category")
				return
			}
			utils.RespondWithSuccess(w, http.StatusCreated, category)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodDelete {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		if err := h.taxonomyService.DeleteCategory(parts[0]); err != nil {
			h.respondServiceError(w, err, "Failed to delete category")
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, map[string]string{"message": "Category deleted"})
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

// handleRegions handles region reference-data routes
func (h *V1Handler) handleRegions(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/regions")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			regions, err := h.taxonomyService.GetAllRegions()
			if err != nil {
				h.respondServiceError(w, err, "Failed to fetch regions")
				return
			}
			utils.RespondWithSuccess(w, http.StatusOK, regions)
		case http.MethodPost:
			var req models.CreateRegionRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			region, err := h.taxonomyService.CreateRegion(&req)
			if err != nil {
				h.respondServiceError(w, err, "Failed to create region")
				return
			}
			utils.RespondWithSuccess(w, http.StatusCreated, region)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodDelete {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		if err := h.taxonomyService.DeleteRegion(parts[0]); err != nil {
			h.respondServiceError(w, err, "Failed to delete region")
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, map[string]string{"message": "Region deleted"})
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

// handleCampaigns handles campaign-related routes
func (h *V1Handler) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/campaigns")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/campaigns and POST /api/v1/campaigns
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			campaigns, err := h.campaignService.GetAllCampaigns()
			if err != nil {
				h.respondServiceError(w, err, "Failed to fetch campaigns")
				return
			}
			utils.RespondWithSuccess(w, http.StatusOK, campaigns)
		case http.MethodPost:
			var req models.CreateCampaignRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			campaign, err := h.campaignService.CreateCampaign(&req)
			if err != nil {
				h.respondServiceError(w, err, "Failed to create campaign")
				return
			}
			utils.RespondWithSuccess(w, http.StatusCreated, campaign)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	campaignID := parts[0]

	// Handle specific campaign endpoint: GET/PUT/DELETE /api/v1/campaigns/:id
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			campaign, err := h.campaignService.GetCampaign(campaignID)
			if err != nil {
				h.respondServiceError(w, err, "Failed to fetch campaign")
				return
			}
			utils.RespondWithSuccess(w, http.StatusOK, campaign)
		case http.MethodPut:
			var req models.UpdateCampaignRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			campaign, err := h.campaignService.UpdateCampaign(campaignID, &req)
			if err != nil {
				h.respondServiceError(w, err, "Failed to update campaign")
				return
			}
			utils.RespondWithSuccess(w, http.StatusOK, campaign)
		case http.MethodDelete:
			if err := h.campaignService.DeleteCampaign(campaignID); err != nil {
				h.respondServiceError(w, err, "Failed to delete campaign")
				return
			}
			utils.RespondWithSuccess(w, http.StatusOK, map[string]string{"message": "Campaign deleted"})
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// Handle campaign actions: POST /api/v1/campaigns/:id/duplicate and
	// GET /api/v1/campaigns/:id/export
	if len(parts) == 2 {
		switch parts[1] {
		case "duplicate":
			if r.Method != http.MethodPost {
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
				return
			}
			campaign, err := h.campaignService.DuplicateCampaign(campaignID)
			if err != nil {
				h.respondServiceError(w, err, "Failed to duplicate campaign")
				return
			}
			utils.RespondWithSuccess(w, http.StatusCreated, campaign)
			return
		case "export":
			if r.Method != http.MethodGet {
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
				return
			}
			h.exportCampaign(w, r, campaignID)
			return
		}
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) exportCampaign(w http.ResponseWriter, r *http.Request, campaignID string) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}
	if format != "pdf" {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported format")
		return
	}

	data, filename, err := h.exportService.ExportCampaignPDF(campaignID)
	if err != nil {
		monitoring.RecordBusinessEvent(r.Context(), "campaign_export", false)
		h.respondServiceError(w, err, "Failed to export campaign")
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "campaign_export", true)
	utils.RespondWithFile(w, services.ContentTypePDF, filename, data)
}

// handleAnalytics handles the fixed aggregate dashboard payload
func (h *V1Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	analytics, err := h.analyticsService.GetAnalytics()
	if err != nil {
		h.respondServiceError(w, err, "Failed to fetch analytics")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, analytics)
}

// handleExport handles the influencer spreadsheet download
func (h *V1Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	ids := splitParam(r.URL.Query().Get("ids"))

	data, filename, contentType, err := h.exportService.ExportInfluencers(format, ids)
	if err != nil {
		monitoring.RecordBusinessEvent(r.Context(), "influencer_export", false)
		h.respondServiceError(w, err, "Failed to export influencers")
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "influencer_export", true)
	utils.RespondWithFile(w, contentType, filename, data)
}

// handleImport handles spreadsheet upload and the template download
func (h *V1Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/import")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle template endpoint: GET /api/v1/import/template
	if len(parts) == 1 && parts[0] == "template" {
		if r.Method != http.MethodGet {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		data, filename, err := h.importService.BuildImportTemplate()
		if err != nil {
			h.respondServiceError(w, err, "Failed to build import template")
			return
		}
		utils.RespondWithFile(w, services.ContentTypeXLSX, filename, data)
		return
	}

	if len(parts) != 1 || parts[0] != "" {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportInfluencers(header.Filename, file)
	if err != nil {
		monitoring.RecordBusinessEvent(r.Context(), "influencer_import", false)
		h.respondServiceError(w, err, "Failed to import influencers")
		return
	}

	monitoring.RecordBusinessEvent(r.Context(), "influencer_import", true)
	utils.RespondWithSuccess(w, http.StatusOK, result)
}

// respondServiceError maps service errors to HTTP statuses. Unexpected
// failures are logged server-side and reported opaquely.
func (h *V1Handler) respondServiceError(w http.ResponseWriter, err error, message string) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.ErrorResponse{
			Error: validationErr.Message,
			Field: validationErr.Field,
		})
	case errors.Is(err, models.ErrDuplicateName):
		utils.RespondWithError(w, http.StatusConflict, "Name already exists")
	case errors.Is(err, models.ErrInUse):
		utils.RespondWithError(w, http.StatusConflict, "Record is still referenced by influencers")
	case errors.Is(err, models.ErrUnsupportedFormat):
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported format")
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Record not found")
	default:
		slog.Error(message, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, message)
	}
}

// parseInfluencerFilter builds a filter from list query parameters
func parseInfluencerFilter(query url.Values) (*models.InfluencerFilter, error) {
	filter := &models.InfluencerFilter{
		Search:      query.Get("search"),
		CategoryIDs: splitParam(query.Get("categoryIds")),
		RegionIDs:   splitParam(query.Get("regionIds")),
		Gender:      query.Get("gender"),
		Platforms:   splitParam(query.Get("platforms")),
		SortBy:      query.Get("sortBy"),
		SortOrder:   query.Get("sortOrder"),
	}

	var err error
	if filter.MinRate, err = parseFloatParam(query, "minRate"); err != nil {
		return nil, err
	}
	if filter.MaxRate, err = parseFloatParam(query, "maxRate"); err != nil {
		return nil, err
	}
	if filter.MinFollowers, err = parseIntParam(query, "minFollowers"); err != nil {
		return nil, err
	}
	if filter.MaxFollowers, err = parseIntParam(query, "maxFollowers"); err != nil {
		return nil, err
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, models.NewValidationError("page", "page must be a positive integer")
		}
		filter.Page = page
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, models.NewValidationError("limit", "limit must be a positive integer")
		}
		filter.Limit = limit
	}

	return filter, nil
}

func parseFloatParam(query url.Values, key string) (*float64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, models.NewValidationError(key, fmt.Sprintf("%s must be a number", key))
	}
	return &value, nil
}

func parseIntParam(query url.Values, key string) (*int64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, models.NewValidationError(key, fmt.Sprintf("%s must be an integer", key))
	}
	return &value, nil
}

// splitParam splits a comma-separated query parameter, dropping empty entries
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
