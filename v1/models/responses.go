package models

// CategoryResponse represents a category with its influencer count
type CategoryResponse struct {
	CategoryID      string `json:"categoryId"`
	Name            string `json:"name"`
	InfluencerCount int64  `json:"influencerCount"`
}

// RegionResponse represents a region with its influencer count
type RegionResponse struct {
	RegionID        string `json:"regionId"`
	Name            string `json:"name"`
	InfluencerCount int64  `json:"influencerCount"`
}

// InfluencerResponse represents an influencer with resolved references
type InfluencerResponse struct {
	InfluencerID    string   `json:"influencerId"`
	Name            string   `json:"name"`
	Username        string   `json:"username"`
	Platforms       []string `json:"platforms"`
	CategoryID      string   `json:"categoryId"`
	CategoryName    string   `json:"categoryName"`
	RegionID        string   `json:"regionId"`
	RegionName      string   `json:"regionName"`
	Gender          Gender   `json:"gender"`
	PhoneNumber     *string  `json:"phoneNumber,omitempty"`
	AdvertisingRate float64  `json:"advertisingRate"`
	FollowersCount  int64    `json:"followersCount"`
	Notes           *string  `json:"notes,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// Pagination describes a page window over a filtered result set
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedInfluencersResponse is the influencer list payload
type PaginatedInfluencersResponse struct {
	Data       []InfluencerResponse `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// BulkUpdateResponse reports how many rows a bulk patch actually modified
type BulkUpdateResponse struct {
	UpdatedCount int64 `json:"updatedCount"`
}

// CampaignResponse represents a campaign, optionally with resolved members
type CampaignResponse struct {
	CampaignID      string               `json:"campaignId"`
	Title           string               `json:"title"`
	Description     *string              `json:"description,omitempty"`
	SelectedFields  []string             `json:"selectedFields"`
	InfluencerCount int64                `json:"influencerCount"`
	Influencers     []InfluencerResponse `json:"influencers,omitempty"`
	CreatedAt       string               `json:"createdAt"`
	UpdatedAt       string               `json:"updatedAt"`
}

// AnalyticsSummary holds the headline dashboard numbers
type AnalyticsSummary struct {
	TotalInfluencers       int64   `json:"totalInfluencers"`
	TotalCampaigns         int64   `json:"totalCampaigns"`
	TotalFollowers         int64   `json:"totalFollowers"`
	AverageAdvertisingRate float64 `json:"averageAdvertisingRate"`
}

// DistributionEntry is one named counter in a distribution
type DistributionEntry struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GenderCount is one gender's influencer count
type GenderCount struct {
	Gender Gender `json:"gender"`
	Count  int64  `json:"count"`
}

// BucketCount is one histogram bucket's count
type BucketCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// AnalyticsResponse is the fixed aggregate dashboard payload
type AnalyticsResponse struct {
	Summary              AnalyticsSummary    `json:"summary"`
	CategoryDistribution []DistributionEntry `json:"categoryDistribution"`
	GenderDistribution   []GenderCount       `json:"genderDistribution"`
	RegionDistribution   []DistributionEntry `json:"regionDistribution"`
	PlatformDistribution []DistributionEntry `json:"platformDistribution"`
	PriceDistribution    []BucketCount       `json:"priceDistribution"`
	FollowerDistribution []BucketCount       `json:"followerDistribution"`
}

// ImportRowError records one failed spreadsheet row with its 1-based row
// number (header row included in the numbering)
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult reports per-row import outcomes
type ImportResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}
