package models

import (
	"time"

	"gorm.io/datatypes"
)

type MediaItem struct {
	URL         string `json:"url"`
	Type        string `json:"type"` // image, video
	Caption     string `json:"caption,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type DraftContent struct {
	Type     ContentType `json:"type"`
	Caption  string      `json:"caption"`
	Hashtags []string    `json:"hashtags"`
	Mentions []string    `json:"mentions"`
	Media    []MediaItem `json:"media"`
}

type Feedback struct {
	From      UserRole     `json:"from"`
	UserID    string       `json:"userId"`
	Message   string       `json:"message"`
	Type      FeedbackType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
}

// Revision - снимок контента до повторной отправки
type Revision struct {
	Version    int          `json:"version"`
	Content    DraftContent `json:"content"`
	ArchivedAt time.Time    `json:"archivedAt"`
}

type DraftDeadlines struct {
	DraftSubmission *time.Time `json:"draftSubmission,omitempty"`
	FinalApproval   *time.Time `json:"finalApproval,omitempty"`
	Publication     *time.Time `json:"publication,omitempty"`
}

// Draft - версия контента инфлюенсера по принятому приглашению
type Draft struct {
	BaseModel
	CampaignID   string `gorm:"type:uuid;not null;index" json:"campaignId"`
	InvitationID string `gorm:"type:uuid;not null;index" json:"invitationId"`
	InfluencerID string `gorm:"type:uuid;not null;index" json:"influencerId"`
	BrandID      string `gorm:"type:uuid;not null;index" json:"brandId"`

	Content datatypes.JSONType[DraftContent] `json:"content"`
	Status  DraftStatus                      `gorm:"type:varchar(30);not null;index" json:"status"`

	Feedback  datatypes.JSONSlice[Feedback] `json:"feedback"`
	Revisions datatypes.JSONSlice[Revision] `json:"revisions"`

	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ApprovedBy  *string    `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	PostURL     string     `json:"postUrl"`

	Deadlines DraftDeadlines `gorm:"embedded;embeddedPrefix:deadline_" json:"deadlines"`

	Version int `gorm:"not null" json:"version"`

	Campaign *BrandCampaign `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"campaign,omitempty"`
}

// CurrentVersion выводится из истории ревизий и не хранится
func (d *Draft) CurrentVersion() int {
	return len(d.Revisions) + 1
}
