package models

// Category represents an influencer content category
type Category struct {
	CategoryID string `gorm:"primarykey;column:category_id" json:"categoryId"`
	Name       string `gorm:"column:name;not null;unique" json:"name"`
	BaseModel
}

// TableName sets the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// Region represents a geographic region
type Region struct {
	RegionID string `gorm:"primarykey;column:region_id" json:"regionId"`
	Name     string `gorm:"column:name;not null;unique" json:"name"`
	BaseModel
}

// TableName sets the table name for GORM
func (Region) TableName() string {
	return "regions"
}

// Influencer represents the normalized influencer entity table. Platforms is
// a serialized list stored under a single text column.
type Influencer struct {
	InfluencerID    string     `gorm:"primarykey;column:influencer_id" json:"influencerId"`
	Name            string     `gorm:"column:name;not null" json:"name"`
	Username        string     `gorm:"column:username;not null" json:"username"`
	Platforms       StringList `gorm:"column:platforms;type:text;not null" json:"platforms"`
	CategoryID      string     `gorm:"column:category_id;not null" json:"categoryId"`
	Category        Category   `gorm:"foreignKey:CategoryID;references:CategoryID" json:"-"`
	RegionID        string     `gorm:"column:region_id;not null" json:"regionId"`
	Region          Region     `gorm:"foreignKey:RegionID;references:RegionID" json:"-"`
	Gender          Gender     `gorm:"column:gender;not null" json:"gender"`
	PhoneNumber     *string    `gorm:"column:phone_number" json:"phoneNumber,omitempty"`
	AdvertisingRate float64    `gorm:"column:advertising_rate;not null" json:"advertisingRate"`
	FollowersCount  int64      `gorm:"column:followers_count;not null" json:"followersCount"`
	Notes           *string    `gorm:"column:notes" json:"notes,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (Influencer) TableName() string {
	return "influencers"
}
