package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"

	"github.com/influencer-hub/dashboard-backend/v1/models"
)

// Content types for export artifacts
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv"
)

const importSheetName = "Influencers"

// ExportService renders campaign PDFs and influencer spreadsheets
type ExportService struct {
	db        *gorm.DB
	campaigns *CampaignService
	printer   *message.Printer
}

// NewExportService creates a new export service
func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{
		db:        db,
		campaigns: NewCampaignService(db),
		printer:   message.NewPrinter(language.English),
	}
}

// ExportCampaignPDF renders a campaign's three-section PDF (cover, table,
// summary) and returns the bytes with a filename derived from the title
func (s *ExportService) ExportCampaignPDF(campaignID string) ([]byte, string, error) {
	var campaign models.Campaign
	if err := s.db.First(&campaign, "campaign_id = ?", campaignID).Error; err != nil {
		return nil, "", err
	}

	influencers, err := s.campaigns.GetCampaignInfluencers(campaignID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.renderCampaignPDF(&campaign, influencers)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render campaign PDF: %w", err)
	}

	filename := exportFilename(campaign.Title) + ".pdf"
	slog.Info("Campaign PDF rendered", "campaignID", campaignID, "influencers", len(influencers), "bytes", len(data))
	return data, filename, nil
}

func (s *ExportService) renderCampaignPDF(campaign *models.Campaign, influencers []models.Influencer) ([]byte, error) {
	const margin = 20.0
	const rowHeight = 8.0

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pageWidth, pageHeight := pdf.GetPageSize()
	usableWidth := pageWidth - 2*margin

	// Table pages carry a title header and a page-number footer; the cover
	// and summary pages do not
	inTable := false
	pdf.SetHeaderFuncMode(func() {
		if !inTable {
			return
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(margin, 6)
		pdf.CellFormat(usableWidth, 5, campaign.Title, "", 0, "L", false, 0, "")
	}, true)
	pdf.SetFooterFunc(func() {
		if !inTable {
			return
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(margin, pageHeight-12)
		pdf.CellFormat(usableWidth, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	// Cover section
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(margin, 52)
	pdf.MultiCell(usableWidth, 12, campaign.Title, "", "C", false)

	if campaign.Description != nil && *campaign.Description != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetXY(margin, 78)
		pdf.MultiCell(usableWidth, 6, *campaign.Description, "", "C", false)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(margin, 100)
	pdf.CellFormat(usableWidth, 5, "Created: "+campaign.CreatedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.SetX(margin)
	pdf.CellFormat(usableWidth, 5, fmt.Sprintf("Total Influencers: %d", len(influencers)), "", 1, "C", false, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.5)
	pdf.Rect(pageWidth/2-20, 120, 40, 40, "D")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.SetXY(pageWidth/2-20, 141)
	pdf.CellFormat(40, 4, "Logo Placeholder", "", 0, "C", false, 0, "")

	// Tabular section: one column per selected field in stored order
	fields := campaign.SelectedFields
	columnWidth := usableWidth / float64(len(fields))

	drawTableHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(0, 0, 0)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetX(margin)
		for _, field := range fields {
			label := models.FieldLabels[field]
			pdf.CellFormat(columnWidth, rowHeight, s.fitCell(pdf, label, columnWidth), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	inTable = true
	pdf.AddPage()
	pdf.SetY(margin)
	drawTableHeader()

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	for i := range influencers {
		if pdf.GetY()+rowHeight > pageHeight-margin {
			pdf.AddPage()
			pdf.SetY(margin)
			drawTableHeader()
			pdf.SetFont("Helvetica", "", 9)
		}

		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetX(margin)
		for _, field := range fields {
			value := s.fieldValue(&influencers[i], field)
			pdf.CellFormat(columnWidth, rowHeight, s.fitCell(pdf, value, columnWidth), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	// Summary section
	inTable = false
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(margin, 26)
	pdf.CellFormat(usableWidth, 8, "Campaign Summary", "", 1, "L", false, 0, "")

	totalRate := 0.0
	totalFollowers := int64(0)
	for i := range influencers {
		totalRate += influencers[i].AdvertisingRate
		totalFollowers += influencers[i].FollowersCount
	}
	// Guard the empty list; the mean is reported as 0, not NaN
	averageRate := 0.0
	if len(influencers) > 0 {
		averageRate = totalRate / float64(len(influencers))
	}

	summaryRows := [][2]string{
		{"Total Influencers", fmt.Sprintf("%d", len(influencers))},
		{"Total Advertising Budget", s.formatNumber(int64(math.Round(totalRate))) + " SAR"},
		{"Average Rate per Influencer", s.formatNumber(int64(math.Round(averageRate))) + " SAR"},
		{"Total Reach (Followers)", s.formatNumber(totalFollowers)},
	}

	pdf.SetY(40)
	for _, row := range summaryRows {
		pdf.SetX(margin)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(80, 10, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(usableWidth-80, 10, row[1], "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportInfluencers renders the influencer spreadsheet (all records, or the
// given ids), name-ascending, as xlsx or csv
func (s *ExportService) ExportInfluencers(format string, ids []string) ([]byte, string, string, error) {
	if format != "xlsx" && format != "csv" {
		return nil, "", "", fmt.Errorf("format %q: %w", format, models.ErrUnsupportedFormat)
	}

	query := s.db.Preload("Category").Preload("Region").Order("name ASC")
	if len(ids) > 0 {
		query = query.Where("influencer_id IN ?", ids)
	}

	var influencers []models.Influencer
	if err := query.Find(&influencers).Error; err != nil {
		return nil, "", "", fmt.Errorf("failed to fetch influencers for export: %w", err)
	}

	rows := make([][]string, 0, len(influencers))
	for i := range influencers {
		rows = append(rows, exportRow(&influencers[i]))
	}

	filename := fmt.Sprintf("influencers_export_%s.%s", time.Now().UTC().Format("2006-01-02"), format)

	var data []byte
	var contentType string
	var err error
	switch format {
	case "csv":
		data, err = renderCSV(models.ExportHeaders, rows)
		contentType = ContentTypeCSV
	default:
		data, err = renderXLSX(models.ExportHeaders, rows)
		contentType = ContentTypeXLSX
	}
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to render %s export: %w", format, err)
	}

	slog.Info("Influencer export rendered", "format", format, "rows", len(rows))
	return data, filename, contentType, nil
}

// exportRow maps an influencer to the fixed spreadsheet column set
func exportRow(influencer *models.Influencer) []string {
	return []string{
		influencer.Name,
		influencer.Username,
		strings.Join(influencer.Platforms, ", "),
		influencer.Category.Name,
		string(influencer.Gender),
		stringOrEmpty(influencer.PhoneNumber),
		formatFloat(influencer.AdvertisingRate),
		fmt.Sprintf("%d", influencer.FollowersCount),
		influencer.Region.Name,
		stringOrEmpty(influencer.Notes),
	}
}

// renderXLSX builds a single-sheet workbook with auto-sized columns
func renderXLSX(headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(importSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(importSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(importSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	// Auto-size columns, capped at 50 characters
	for col, header := range headers {
		width := len(header)
		for _, row := range rows {
			if col < len(row) && len(row[col]) > width {
				width = len(row[col])
			}
		}
		if width > 48 {
			width = 48
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(importSheetName, name, name, float64(width+2)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderCSV writes the header row plus data rows
func renderCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fieldValue renders one table cell through the fixed formatter table.
// Unknown field identifiers render as an empty cell.
func (s *ExportService) fieldValue(influencer *models.Influencer, field string) string {
	switch field {
	case models.FieldName:
		return influencer.Name
	case models.FieldUsername:
		return "@" + influencer.Username
	case models.FieldPlatforms:
		return strings.Join(influencer.Platforms, ", ")
	case models.FieldCategory:
		return influencer.Category.Name
	case models.FieldGender:
		return string(influencer.Gender)
	case models.FieldPhoneNumber:
		return stringOrNA(influencer.PhoneNumber)
	case models.FieldAdvertisingRate:
		return s.formatNumber(int64(math.Round(influencer.AdvertisingRate)))
	case models.FieldFollowersCount:
		return s.formatNumber(influencer.FollowersCount)
	case models.FieldRegion:
		return influencer.Region.Name
	case models.FieldNotes:
		return stringOrNA(influencer.Notes)
	default:
		return ""
	}
}

// formatNumber renders a locale-grouped integer (1234567 -> 1,234,567)
func (s *ExportService) formatNumber(n int64) string {
	return s.printer.Sprintf("%d", n)
}

// fitCell truncates a value to the column width with an ellipsis
func (s *ExportService) fitCell(pdf *gofpdf.Fpdf, value string, width float64) string {
	const padding = 2.0
	if pdf.GetStringWidth(value) <= width-padding {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 {
		candidate := string(runes) + "..."
		if pdf.GetStringWidth(candidate) <= width-padding {
			return candidate
		}
		runes = runes[:len(runes)-1]
	}
	return ""
}

// exportFilename derives a filename stem from a title (whitespace -> "_")
func exportFilename(title string) string {
	return strings.Join(strings.Fields(title), "_")
}

func stringOrNA(value *string) string {
	if value == nil || *value == "" {
		return "N/A"
	}
	return *value
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatFloat(value float64) string {
	if value == math.Trunc(value) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%g", value)
}
