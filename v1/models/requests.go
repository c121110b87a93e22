package models

import "fmt"

// CreateInfluencerRequest represents the payload for creating an influencer
type CreateInfluencerRequest struct {
	Name            string   `json:"name"`
	Username        string   `json:"username"`
	Platforms       []string `json:"platforms"`
	CategoryID      string   `json:"categoryId"`
	RegionID        string   `json:"regionId"`
	Gender          Gender   `json:"gender"`
	PhoneNumber     *string  `json:"phoneNumber,omitempty"`
	AdvertisingRate float64  `json:"advertisingRate"`
	FollowersCount  int64    `json:"followersCount"`
	Notes           *string  `json:"notes,omitempty"`
}

// Validate checks the request against the entity constraints
func (r *CreateInfluencerRequest) Validate() error {
	if r.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if len(r.Name) > MaxInfluencerNameLength {
		return NewValidationError("name", fmt.Sprintf("name must be at most %d characters", MaxInfluencerNameLength))
	}
	if r.Username == "" {
		return NewValidationError("username", "username is required")
	}
	if len(r.Username) > MaxUsernameLength {
		return NewValidationError("username", fmt.Sprintf("username must be at most %d characters", MaxUsernameLength))
	}
	if len(r.Platforms) == 0 {
		return NewValidationError("platforms", "at least one platform is required")
	}
	if r.CategoryID == "" {
		return NewValidationError("categoryId", "category is required")
	}
	if r.RegionID == "" {
		return NewValidationError("regionId", "region is required")
	}
	if !r.Gender.IsValid() {
		return NewValidationError("gender", "gender must be Male or Female")
	}
	if r.AdvertisingRate <= 0 {
		return NewValidationError("advertisingRate", "advertising rate must be positive")
	}
	if r.FollowersCount < 0 {
		return NewValidationError("followersCount", "followers count must be non-negative")
	}
	return nil
}

// UpdateInfluencerRequest represents a partial patch; nil fields are untouched
type UpdateInfluencerRequest struct {
	Name            *string  `json:"name,omitempty"`
	Username        *string  `json:"username,omitempty"`
	Platforms       []string `json:"platforms,omitempty"`
	CategoryID      *string  `json:"categoryId,omitempty"`
	RegionID        *string  `json:"regionId,omitempty"`
	Gender          *Gender  `json:"gender,omitempty"`
	PhoneNumber     *string  `json:"phoneNumber,omitempty"`
	AdvertisingRate *float64 `json:"advertisingRate,omitempty"`
	FollowersCount  *int64   `json:"followersCount,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// Validate checks the provided fields against the entity constraints
func (r *UpdateInfluencerRequest) Validate() error {
	if r.Name != nil && (*r.Name == "" || len(*r.Name) > MaxInfluencerNameLength) {
		return NewValidationError("name", fmt.Sprintf("name must be 1-%d characters", MaxInfluencerNameLength))
	}
	if r.Username != nil && (*r.Username == "" || len(*r.Username) > MaxUsernameLength) {
		return NewValidationError("username", fmt.Sprintf("username must be 1-%d characters", MaxUsernameLength))
	}
	if r.Platforms != nil && len(r.Platforms) == 0 {
		return NewValidationError("platforms", "at least one platform is required")
	}
	if r.Gender != nil && !r.Gender.IsValid() {
		return NewValidationError("gender", "gender must be Male or Female")
	}
	if r.AdvertisingRate != nil && *r.AdvertisingRate <= 0 {
		return NewValidationError("advertisingRate", "advertising rate must be positive")
	}
	if r.FollowersCount != nil && *r.FollowersCount < 0 {
		return NewValidationError("followersCount", "followers count must be non-negative")
	}
	return nil
}

// BulkUpdateFields holds the patch applied to every targeted influencer
type BulkUpdateFields struct {
	CategoryID *string `json:"categoryId,omitempty"`
	RegionID   *string `json:"regionId,omitempty"`
	Gender     *Gender `json:"gender,omitempty"`
}

// IsEmpty reports whether no field was provided
func (f *BulkUpdateFields) IsEmpty() bool {
	return f.CategoryID == nil && f.RegionID == nil && f.Gender == nil
}

// BulkUpdateRequest applies the same partial patch to a batch of influencers
type BulkUpdateRequest struct {
	IDs     []string         `json:"ids"`
	Updates BulkUpdateFields `json:"updates"`
}

// Validate checks the batch shape
func (r *BulkUpdateRequest) Validate() error {
	if len(r.IDs) == 0 {
		return NewValidationError("ids", "at least one influencer must be selected")
	}
	if r.Updates.IsEmpty() {
		return NewValidationError("updates", "at least one field must be updated")
	}
	if r.Updates.Gender != nil && !r.Updates.Gender.IsValid() {
		return NewValidationError("gender", "gender must be Male or Female")
	}
	return nil
}

// CreateCategoryRequest represents the payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// Validate checks the request
func (r *CreateCategoryRequest) Validate() error {
	if r.Name == "" {
		return NewValidationError("name", "category name is required")
	}
	if len(r.Name) > MaxTaxonomyNameLength {
		return NewValidationError("name", fmt.Sprintf("category name must be at most %d characters", MaxTaxonomyNameLength))
	}
	return nil
}

// CreateRegionRequest represents the payload for creating a region
type CreateRegionRequest struct {
	Name string `json:"name"`
}

// Validate checks the request
func (r *CreateRegionRequest) Validate() error {
	if r.Name == "" {
		return NewValidationError("name", "region name is required")
	}
	if len(r.Name) > MaxTaxonomyNameLength {
		return NewValidationError("name", fmt.Sprintf("region name must be at most %d characters", MaxTaxonomyNameLength))
	}
	return nil
}

// CreateCampaignRequest represents the payload for creating a campaign
type CreateCampaignRequest struct {
	Title          string   `json:"title"`
	Description    *string  `json:"description,omitempty"`
	SelectedFields []string `json:"selectedFields"`
	InfluencerIDs  []string `json:"influencerIds"`
}

// Validate checks the request against the field vocabulary
func (r *CreateCampaignRequest) Validate() error {
	if r.Title == "" {
		return NewValidationError("title", "campaign title is required")
	}
	if len(r.Title) > MaxCampaignTitleLength {
		return NewValidationError("title", fmt.Sprintf("campaign title must be at most %d characters", MaxCampaignTitleLength))
	}
	if len(r.SelectedFields) == 0 {
		return NewValidationError("selectedFields", "at least one field must be selected")
	}
	for _, field := range r.SelectedFields {
		if !IsValidField(field) {
			return NewValidationError("selectedFields", fmt.Sprintf("unknown field %q", field))
		}
	}
	if len(r.InfluencerIDs) == 0 {
		return NewValidationError("influencerIds", "at least one influencer must be selected")
	}
	return nil
}

// UpdateCampaignRequest represents a partial campaign patch; a non-nil
// InfluencerIDs slice replaces the membership set
type UpdateCampaignRequest struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	SelectedFields []string `json:"selectedFields,omitempty"`
	InfluencerIDs  []string `json:"influencerIds,omitempty"`
}

// Validate checks the provided fields
func (r *UpdateCampaignRequest) Validate() error {
	if r.Title != nil && (*r.Title == "" || len(*r.Title) > MaxCampaignTitleLength) {
		return NewValidationError("title", fmt.Sprintf("campaign title must be 1-%d characters", MaxCampaignTitleLength))
	}
	if r.SelectedFields != nil {
		if len(r.SelectedFields) == 0 {
			return NewValidationError("selectedFields", "at least one field must be selected")
		}
		for _, field := range r.SelectedFields {
			if !IsValidField(field) {
				return NewValidationError("selectedFields", fmt.Sprintf("unknown field %q", field))
			}
		}
	}
	if r.InfluencerIDs != nil && len(r.InfluencerIDs) == 0 {
		return NewValidationError("influencerIds", "at least one influencer must be selected")
	}
	return nil
}

// InfluencerFilter is the parsed influencer list query. Numeric ranges follow
// one convention everywhere: min is inclusive, max is exclusive.
type InfluencerFilter struct {
	Search       string
	CategoryIDs  []string
	RegionIDs    []string
	Gender       string
	Platforms    []string
	MinRate      *float64
	MaxRate      *float64
	MinFollowers *int64
	MaxFollowers *int64
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

// Normalize applies pagination and sort defaults
func (f *InfluencerFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.SortBy == "" {
		f.SortBy = DefaultSortBy
	}
	if f.SortOrder == "" {
		f.SortOrder = DefaultSortOrder
	}
}

// Validate checks enum and range constraints after normalization
func (f *InfluencerFilter) Validate() error {
	if f.Limit > MaxLimit {
		return NewValidationError("limit", fmt.Sprintf("limit must be at most %d", MaxLimit))
	}
	if f.Gender != "" && !Gender(f.Gender).IsValid() {
		return NewValidationError("gender", "gender must be Male or Female")
	}
	if _, ok := SortColumns[f.SortBy]; !ok {
		return NewValidationError("sortBy", "sortBy must be one of name, followersCount, advertisingRate, createdAt")
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		return NewValidationError("sortOrder", "sortOrder must be asc or desc")
	}
	if f.MinRate != nil && *f.MinRate < 0 {
		return NewValidationError("minRate", "minRate must be non-negative")
	}
	if f.MaxRate != nil && *f.MaxRate < 0 {
		return NewValidationError("maxRate", "maxRate must be non-negative")
	}
	if f.MinFollowers != nil && *f.MinFollowers < 0 {
		return NewValidationError("minFollowers", "minFollowers must be non-negative")
	}
	if f.MaxFollowers != nil && *f.MaxFollowers < 0 {
		return NewValidationError("maxFollowers", "maxFollowers must be non-negative")
	}
	return nil
}
