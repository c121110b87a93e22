package models

// Campaign field vocabulary. A campaign's selected_fields list may only
// contain these identifiers; anything else fails validation on write and
// renders as an empty cell on export.
const (
	FieldName            = "name"
	FieldUsername        = "username"
	FieldPlatforms       = "platforms"
	FieldCategory        = "category"
	FieldGender          = "gender"
	FieldPhoneNumber     = "phoneNumber"
	FieldAdvertisingRate = "advertisingRate"
	FieldFollowersCount  = "followersCount"
	FieldRegion          = "region"
	FieldNotes           = "notes"
)

// CampaignFields is the ordered field vocabulary for campaign exports
var CampaignFields = []string{
	FieldName,
	FieldUsername,
	FieldPlatforms,
	FieldCategory,
	FieldGender,
	FieldPhoneNumber,
	FieldAdvertisingRate,
	FieldFollowersCount,
	FieldRegion,
	FieldNotes,
}

// FieldLabels maps field identifiers to their printed column headers
var FieldLabels = map[string]string{
	FieldName:            "Name",
	FieldUsername:        "Username",
	FieldPlatforms:       "Platforms",
	FieldCategory:        "Category",
	FieldGender:          "Gender",
	FieldPhoneNumber:     "Phone",
	FieldAdvertisingRate: "Rate (SAR)",
	FieldFollowersCount:  "Followers",
	FieldRegion:          "Region",
	FieldNotes:           "Notes",
}

// IsValidField reports whether a field identifier belongs to the vocabulary
func IsValidField(field string) bool {
	_, ok := FieldLabels[field]
	return ok
}

// Platforms lists the supported social platforms
var Platforms = []string{
	"Instagram",
	"TikTok",
	"YouTube",
	"Snapchat",
	"X (Twitter)",
	"Facebook",
	"Twitch",
	"LinkedIn",
}

// Field length constraints
const (
	MaxInfluencerNameLength = 100
	MaxUsernameLength       = 100
	MaxTaxonomyNameLength   = 50
	MaxCampaignTitleLength  = 200
)

// Pagination constraints
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Sort defaults
const (
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
)

// SortColumns maps API sort keys to database columns
var SortColumns = map[string]string{
	"name":            "name",
	"followersCount":  "followers_count",
	"advertisingRate": "advertising_rate",
	"createdAt":       "created_at",
}

// RangeBucket describes one histogram bucket. Buckets are min-inclusive and
// max-exclusive; Max < 0 marks an open upper bound.
type RangeBucket struct {
	Label string
	Min   float64
	Max   float64
}

// RateBuckets are the advertising-rate histogram boundaries (SAR)
var RateBuckets = []RangeBucket{
	{Label: "0-1000", Min: 0, Max: 1000},
	{Label: "1000-5000", Min: 1000, Max: 5000},
	{Label: "5000-10000", Min: 5000, Max: 10000},
	{Label: "10000-50000", Min: 10000, Max: 50000},
	{Label: "50000+", Min: 50000, Max: -1},
}

// FollowerBuckets are the follower-count histogram boundaries
var FollowerBuckets = []RangeBucket{
	{Label: "0-10K", Min: 0, Max: 10_000},
	{Label: "10K-100K", Min: 10_000, Max: 100_000},
	{Label: "100K-500K", Min: 100_000, Max: 500_000},
	{Label: "500K-1M", Min: 500_000, Max: 1_000_000},
	{Label: "1M+", Min: 1_000_000, Max: -1},
}

// ExportHeaders is the fixed spreadsheet column set for influencer
// export/import, in column order
var ExportHeaders = []string{
	"Name",
	"Username",
	"Platforms",
	"Category",
	"Gender",
	"Phone Number",
	"Advertising Rate (SAR)",
	"Followers Count",
	"Region",
	"Notes",
}
