package models

// Campaign groups influencers under a title and records which fields its
// document exports render, in order.
type Campaign struct {
	CampaignID     string     `gorm:"primarykey;column:campaign_id" json:"campaignId"`
	Title          string     `gorm:"column:title;not null" json:"title"`
	Description    *string    `gorm:"column:description" json:"description,omitempty"`
	SelectedFields StringList `gorm:"column:selected_fields;type:text;not null" json:"selectedFields"`
	BaseModel
}

// TableName sets the table name for GORM
func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignInfluencer is the campaign membership join table. Membership rows
// cascade when either side is deleted; campaigns themselves survive
// influencer deletion.
type CampaignInfluencer struct {
	CampaignID   string     `gorm:"primarykey;column:campaign_id" json:"campaignId"`
	InfluencerID string     `gorm:"primarykey;column:influencer_id" json:"influencerId"`
	Campaign     Campaign   `gorm:"foreignKey:CampaignID;references:CampaignID;constraint:OnDelete:CASCADE" json:"-"`
	Influencer   Influencer `gorm:"foreignKey:InfluencerID;references:InfluencerID;constraint:OnDelete:CASCADE" json:"-"`
	BaseModel
}

// TableName sets the table name for GORM
func (CampaignInfluencer) TableName() string {
	return "campaign_influencers"
}
