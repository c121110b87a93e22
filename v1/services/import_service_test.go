package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

func setupImportFixtures(t *testing.T) (*gorm.DB, *ImportService) {
	db := SetupSQLiteTestDB(t)
	seedTaxonomy(t, db)
	return db, NewImportService(db)
}

func TestImportService_ImportInfluencers_CSV(t *testing.T) {
	db, svc := setupImportFixtures(t)

	file := strings.Join([]string{
		"Name,Username,Platforms,Category,Gender,Phone Number,Advertising Rate (SAR),Followers Count,Region,Notes",
		"Sara,@sara_sa,\"Instagram, TikTok\",Lifestyle,Female,+966501234567,2500,120000,Riyadh,Priority",
		"Omar,omar,YouTube,Lifestyle,Male,,abc,50000,Riyadh,",
		"Nora,nora,Snapchat,Unknown Category,Female,,1000,8000,Riyadh,",
		",,,,,,,,,",
		"Huda,huda,Instagram,Lifestyle,Female,,1800,30000,Riyadh,",
	}, "\n")

	result, err := svc.ImportInfluencers("upload.csv", strings.NewReader(file))
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 2)

	// row numbers are 1-based with the header as row 1
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "invalid advertising rate")
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Error, "unknown category")

	t.Run("usernames are stored without the @ prefix", func(t *testing.T) {
		var sara models.Influencer
		assert.NoError(t, db.First(&sara, "name = ?", "Sara").Error)
		assert.Equal(t, "sara_sa", sara.Username)
		assert.Equal(t, models.StringList{"Instagram", "TikTok"}, sara.Platforms)
	})

	t.Run("blank rows are skipped silently", func(t *testing.T) {
		var count int64
		assert.NoError(t, db.Model(&models.Influencer{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})
}

func TestImportService_ImportInfluencers_XLSX(t *testing.T) {
	_, svc := setupImportFixtures(t)

	data, err := renderXLSX(models.ExportHeaders, [][]string{
		{"Sara", "sara", "Instagram", "Lifestyle", "Female", "", "2500", "120000", "Riyadh", ""},
	})
	assert.NoError(t, err)

	result, err := svc.ImportInfluencers("upload.xlsx", bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 0, result.Failed)
}

func TestImportService_ImportInfluencers_BadInput(t *testing.T) {
	_, svc := setupImportFixtures(t)

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := svc.ImportInfluencers("upload.pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	})

	t.Run("missing required column", func(t *testing.T) {
		file := "Name,Username,Platforms,Category,Gender,Followers Count,Region\n"
		_, err := svc.ImportInfluencers("upload.csv", strings.NewReader(file))
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Message, "advertisingRate")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := svc.ImportInfluencers("upload.csv", strings.NewReader(""))
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("garbage xlsx bytes", func(t *testing.T) {
		_, err := svc.ImportInfluencers("upload.xlsx", strings.NewReader("not a workbook"))
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestImportService_BuildImportTemplate(t *testing.T) {
	_, svc := setupImportFixtures(t)

	data, filename, err := svc.BuildImportTemplate()
	assert.NoError(t, err)
	assert.Equal(t, "influencer_import_template.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(importSheetName)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, models.ExportHeaders, rows[0])
	assert.Equal(t, "John Doe", rows[1][0])
}
