package models

import (
	"time"

	"gorm.io/datatypes"
)

type AudienceDemographics struct {
	AgeMin    int      `json:"ageMin,omitempty"`
	AgeMax    int      `json:"ageMax,omitempty"`
	Genders   []string `json:"genders,omitempty"`
	Countries []string `json:"countries,omitempty"`
}

type ContentRequirements struct {
	ContentTypes []ContentType `json:"contentTypes,omitempty"`
	PostCount    int           `json:"postCount,omitempty"`
	Hashtags     []string      `json:"hashtags,omitempty"`
	Mentions     []string      `json:"mentions,omitempty"`
	Guidelines   string        `json:"guidelines,omitempty"`
}

// BrandCampaign принадлежит одному бренду. Version - счетчик для
// оптимистичной блокировки при изменении приглашений.
type BrandCampaign struct {
	BaseModel
	BrandID     string `gorm:"type:uuid;not null;index" json:"brandId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	Categories    datatypes.JSONSlice[string]              `json:"categories"`
	MinFollowers  int64                                    `json:"minFollowers"`
	MaxFollowers  int64                                    `json:"maxFollowers"`
	MinEngagement float64                                  `json:"minEngagement"`
	MaxEngagement float64                                  `json:"maxEngagement"`
	Location      string                                   `json:"location"`
	Demographics  datatypes.JSONType[AudienceDemographics] `json:"demographics"`

	BudgetMin int64 `gorm:"not null" json:"budgetMin"`
	BudgetMax int64 `gorm:"not null" json:"budgetMax"`

	ApplicationDeadline time.Time `gorm:"not null" json:"applicationDeadline"`
	ContentDeadline     time.Time `gorm:"not null" json:"contentDeadline"`
	PublishDate         time.Time `gorm:"not null" json:"publishDate"`

	Requirements datatypes.JSONType[ContentRequirements] `json:"requirements"`

	Status  CampaignStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Version int            `gorm:"not null" json:"version"`

	Invitations []Invitation `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"invitations,omitempty"`
	Brand       *User        `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"brand,omitempty"`
}

// FindInvitation возвращает приглашение инфлюенсера или nil
func (c *BrandCampaign) FindInvitation(influencerID string) *Invitation {
	for i := range c.Invitations {
		if c.Invitations[i].InfluencerID == influencerID {
			return &c.Invitations[i]
		}
	}
	return nil
}

// HasInvitationWithStatus - используется предикатом доступа
func (c *BrandCampaign) HasInvitationWithStatus(influencerID string, status InvitationStatus) bool {
	inv := c.FindInvitation(influencerID)
	return inv != nil && inv.Status == status
}
