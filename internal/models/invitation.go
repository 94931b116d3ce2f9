package models

import "time"

// Invitation - приглашение бренда конкретному инфлюенсеру в рамках кампании.
// Пара (campaign, influencer) уникальна.
type Invitation struct {
	BaseModel
	CampaignID   string           `gorm:"type:uuid;not null;uniqueIndex:idx_invitation_campaign_influencer" json:"campaignId"`
	InfluencerID string           `gorm:"type:uuid;not null;uniqueIndex:idx_invitation_campaign_influencer;index" json:"influencerId"`
	Status       InvitationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	InvitedAt    time.Time        `gorm:"not null" json:"invitedAt"`
	RespondedAt  *time.Time       `json:"respondedAt,omitempty"`
	AgreedPrice  *int64           `json:"agreedPrice,omitempty"`

	Influencer *User `gorm:"foreignKey:InfluencerID;constraint:OnDelete:CASCADE" json:"influencer,omitempty"`
}

func (Invitation) TableName() string {
	return "campaign_invitations"
}
