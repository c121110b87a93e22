package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

// ImportService loads influencer records from uploaded spreadsheets
type ImportService struct {
	db          *gorm.DB
	influencers *InfluencerService
}

// NewImportService creates a new import service
func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{
		db:          db,
		influencers: NewInfluencerService(db),
	}
}

// headerAliases maps normalized column headers to canonical field keys.
// Normalization lowercases and strips everything but letters, so
// "Advertising Rate (SAR)", "advertisingRate" and "Advertising Rate" all
// resolve to the same key.
var headerAliases = map[string]string{
	"name":               "name",
	"username":           "username",
	"platforms":          "platforms",
	"category":           "category",
	"gender":             "gender",
	"phonenumber":        "phoneNumber",
	"phone":              "phoneNumber",
	"advertisingrate":    "advertisingRate",
	"advertisingratesar": "advertisingRate",
	"rate":               "advertisingRate",
	"ratesar":            "advertisingRate",
	"followerscount":     "followersCount",
	"followers":          "followersCount",
	"region":             "region",
	"notes":              "notes",
}

// ImportInfluencers parses an uploaded xlsx or csv file and creates one
// influencer per data row. A malformed row is recorded with its spreadsheet
// row number (1-based, header included) and never aborts the batch.
func (s *ImportService) ImportInfluencers(filename string, file io.Reader) (*models.ImportResult, error) {
	rows, err := parseSpreadsheet(filename, file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, models.NewValidationError("file", "file is empty")
	}

	columns, err := resolveHeader(rows[0])
	if err != nil {
		return nil, err
	}

	categoryByName, regionByName, err := s.loadTaxonomies()
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{Errors: []models.ImportRowError{}}
	for i, row := range rows[1:] {
		rowNumber := i + 2
		if isEmptyRow(row) {
			continue
		}

		req, err := buildImportRequest(columns, row, categoryByName, regionByName)
		if err == nil {
			_, err = s.influencers.CreateInfluencer(req)
		}

		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, models.ImportRowError{
				Row:   rowNumber,
				Error: err.Error(),
			})
			continue
		}
		result.Success++
	}

	slog.Info("Import completed", "success", result.Success, "failed", result.Failed)
	return result, nil
}

// BuildImportTemplate renders a one-row sample workbook for downloads
func (s *ImportService) BuildImportTemplate() ([]byte, string, error) {
	sample := [][]string{{
		"John Doe",
		"johndoe",
		"Instagram, TikTok",
		"Lifestyle",
		"Male",
		"+966501234567",
		"5000",
		"100000",
		"Riyadh",
		"Sample influencer",
	}}

	data, err := renderXLSX(models.ExportHeaders, sample)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render import template: %w", err)
	}
	return data, "influencer_import_template.xlsx", nil
}

// parseSpreadsheet reads every cell of the first sheet (xlsx) or the whole
// file (csv) into string rows
func parseSpreadsheet(filename string, file io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		workbook, err := excelize.OpenReader(file)
		if err != nil {
			return nil, models.NewValidationError("file", "failed to parse file, please check the format")
		}
		defer workbook.Close()

		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			return nil, models.NewValidationError("file", "workbook has no sheets")
		}
		rows, err := workbook.GetRows(sheets[0])
		if err != nil {
			return nil, models.NewValidationError("file", "failed to read sheet rows")
		}
		return rows, nil
	case ".csv":
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, models.NewValidationError("file", "failed to parse file, please check the format")
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("file %q: %w", filename, models.ErrUnsupportedFormat)
	}
}

// resolveHeader maps column index to canonical field key
func resolveHeader(header []string) (map[int]string, error) {
	columns := make(map[int]string)
	for i, cell := range header {
		if key, ok := headerAliases[normalizeHeader(cell)]; ok {
			columns[i] = key
		}
	}
	for _, required := range []string{"name", "username", "platforms", "category", "gender", "advertisingRate", "followersCount", "region"} {
		found := false
		for _, key := range columns {
			if key == required {
				found = true
				break
			}
		}
		if !found {
			return nil, models.NewValidationError("file", fmt.Sprintf("missing required column %q", required))
		}
	}
	return columns, nil
}

func normalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// buildImportRequest maps one spreadsheet row to a create request, resolving
// category and region by name
func buildImportRequest(columns map[int]string, row []string, categoryByName, regionByName map[string]string) (*models.CreateInfluencerRequest, error) {
	values := make(map[string]string)
	for i, key := range columns {
		if i < len(row) {
			values[key] = strings.TrimSpace(row[i])
		}
	}

	rate, err := strconv.ParseFloat(values["advertisingRate"], 64)
	if err != nil {
		return nil, models.NewValidationError("advertisingRate", fmt.Sprintf("invalid advertising rate %q", values["advertisingRate"]))
	}

	followers, err := strconv.ParseInt(values["followersCount"], 10, 64)
	if err != nil {
		return nil, models.NewValidationError("followersCount", fmt.Sprintf("invalid followers count %q", values["followersCount"]))
	}

	categoryID, ok := categoryByName[values["category"]]
	if !ok {
		return nil, models.NewValidationError("category", fmt.Sprintf("unknown category %q", values["category"]))
	}

	regionID, ok := regionByName[values["region"]]
	if !ok {
		return nil, models.NewValidationError("region", fmt.Sprintf("unknown region %q", values["region"]))
	}

	platforms := []string{}
	for _, platform := range strings.Split(values["platforms"], ",") {
		if trimmed := strings.TrimSpace(platform); trimmed != "" {
			platforms = append(platforms, trimmed)
		}
	}

	req := &models.CreateInfluencerRequest{
		Name:            values["name"],
		Username:        strings.TrimPrefix(values["username"], "@"),
		Platforms:       platforms,
		CategoryID:      categoryID,
		RegionID:        regionID,
		Gender:          models.Gender(values["gender"]),
		AdvertisingRate: rate,
		FollowersCount:  followers,
	}
	if phone := values["phoneNumber"]; phone != "" {
		req.PhoneNumber = &phone
	}
	if notes := values["notes"]; notes != "" {
		req.Notes = &notes
	}
	return req, nil
}

// loadTaxonomies builds name -> id lookup maps for categories and regions
func (s *ImportService) loadTaxonomies() (map[string]string, map[string]string, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load categories: %w", err)
	}
	var regions []models.Region
	if err := s.db.Find(&regions).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load regions: %w", err)
	}

	categoryByName := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryByName[c.Name] = c.CategoryID
	}
	regionByName := make(map[string]string, len(regions))
	for _, r := range regions {
		regionByName[r.Name] = r.RegionID
	}
	return categoryByName, regionByName, nil
}
