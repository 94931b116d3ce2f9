package models

import "time"

// InfluencerProfile - расширение User с ролью influencer.
// Цена не хранится: считается из Followers и EngagementRate в algorithms.
type InfluencerProfile struct {
	BaseModel
	UserID            string `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	InstagramUsername string `gorm:"not null;uniqueIndex" json:"instagramUsername"`
	ProfilePictureURL string `json:"profilePictureUrl"`

	Followers      int64      `gorm:"not null;index" json:"followers"`
	Following      int64      `gorm:"not null" json:"following"`
	MediaCount     int64      `gorm:"not null" json:"mediaCount"`
	AvgLikes       float64    `gorm:"not null" json:"avgLikes"`
	AvgComments    float64    `gorm:"not null" json:"avgComments"`
	EngagementRate float64    `gorm:"not null;index" json:"engagementRate"`
	StatsSyncedAt  *time.Time `json:"statsSyncedAt,omitempty"`

	Category string `gorm:"index" json:"category"`
	Bio      string `json:"bio"`
	Location string `gorm:"index" json:"location"`
	Slug     string `gorm:"not null;uniqueIndex" json:"slug"`

	IsActive         bool `gorm:"not null" json:"isActive"`
	ProfileCompleted bool `gorm:"not null" json:"profileCompleted"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
