package dto

import (
	"time"

	"collab_backend/internal/models"
)

type BudgetRange struct {
	Min int64 `json:"min" validate:"gte=0"`
	Max int64 `json:"max" validate:"gtfield=Min"`
}

// TimelineRequest - все три даты обязательны, порядок не проверяется
type TimelineRequest struct {
	ApplicationDeadline *time.Time `json:"applicationDeadline" validate:"required"`
	ContentDeadline     *time.Time `json:"contentDeadline" validate:"required"`
	PublishDate         *time.Time `json:"publishDate" validate:"required"`
}

type TargetingRequest struct {
	Categories    []string                     `json:"categories" validate:"omitempty,max=20,dive,max=50"`
	MinFollowers  int64                        `json:"minFollowers" validate:"gte=0"`
	MaxFollowers  int64                        `json:"maxFollowers" validate:"gte=0"`
	MinEngagement float64                      `json:"minEngagement" validate:"gte=0"`
	MaxEngagement float64                      `json:"maxEngagement" validate:"gte=0"`
	Location      string                       `json:"location" validate:"omitempty,max=100"`
	Demographics  *models.AudienceDemographics `json:"demographics"`
}

type CreateCampaignRequest struct {
	Title        string                      `json:"title" validate:"required,max=200"`
	Description  string                      `json:"description" validate:"omitempty,max=5000"`
	Targeting    TargetingRequest            `json:"targeting"`
	Budget       *BudgetRange                `json:"budget" validate:"required"`
	Timeline     *TimelineRequest            `json:"timeline" validate:"required"`
	Requirements *models.ContentRequirements `json:"requirements"`
}

type UpdateCampaignStatusRequest struct {
	Status models.CampaignStatus `json:"status" validate:"required,is-campaign-status"`
}

type CampaignListQuery struct {
	Status models.CampaignStatus `form:"status" validate:"omitempty,is-campaign-status"`
	Pagination
}

type InviteRequest struct {
	InfluencerID string `json:"influencerId" validate:"required,uuid"`
	AgreedPrice  *int64 `json:"agreedPrice" validate:"omitempty,gte=0"`
}

type RespondInvitationRequest struct {
	Decision models.InvitationStatus `json:"decision" validate:"required,is-invitation-decision"`
}

// CampaignSummary - короткое представление кампании для списков инфлюенсера
type CampaignSummary struct {
	ID                  string                `json:"id"`
	BrandID             string                `json:"brandId"`
	BrandName           string                `json:"brandName,omitempty"`
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Status              models.CampaignStatus `json:"status"`
	BudgetMin           int64                 `json:"budgetMin"`
	BudgetMax           int64                 `json:"budgetMax"`
	ApplicationDeadline time.Time             `json:"applicationDeadline"`
	ContentDeadline     time.Time             `json:"contentDeadline"`
	PublishDate         time.Time             `json:"publishDate"`
}

func NewCampaignSummary(c *models.BrandCampaign) CampaignSummary {
	s := CampaignSummary{
		ID:                  c.ID,
		BrandID:             c.BrandID,
		Title:               c.Title,
		Description:         c.Description,
		Status:              c.Status,
		BudgetMin:           c.BudgetMin,
		BudgetMax:           c.BudgetMax,
		ApplicationDeadline: c.ApplicationDeadline,
		ContentDeadline:     c.ContentDeadline,
		PublishDate:         c.PublishDate,
	}
	if c.Brand != nil {
		s.BrandName = c.Brand.CompanyName
	}
	return s
}

// DiscoveryQuery - фильтры поиска инфлюенсеров брендом
type DiscoveryQuery struct {
	Category      string  `form:"category" validate:"omitempty,max=50"`
	Location      string  `form:"location" validate:"omitempty,max=100"`
	MinFollowers  int64   `form:"minFollowers" validate:"gte=0"`
	MaxFollowers  int64   `form:"maxFollowers" validate:"gte=0"`
	MinEngagement float64 `form:"minEngagement" validate:"gte=0"`
	MaxEngagement float64 `form:"maxEngagement" validate:"gte=0"`
	MinPrice      int64   `form:"minPrice" validate:"gte=0"`
	MaxPrice      int64   `form:"maxPrice" validate:"gte=0"`
	Search        string  `form:"search" validate:"omitempty,max=100"`
	CampaignID    string  `form:"campaignId" validate:"omitempty,uuid"`
	Pagination
}

type DiscoveryItem struct {
	UserID            string   `json:"userId"`
	Name              string   `json:"name"`
	InstagramUsername string   `json:"instagramUsername"`
	ProfilePictureURL string   `json:"profilePictureUrl"`
	Followers         int64    `json:"followers"`
	EngagementRate    float64  `json:"engagementRate"`
	Category          string   `json:"category"`
	Location          string   `json:"location"`
	Slug              string   `json:"slug"`
	EstimatedPrice    int64    `json:"estimatedPrice"`
	Currency          string   `json:"currency"`
	MatchScore        *float64 `json:"matchScore,omitempty"`
	MatchReasons      []string `json:"matchReasons,omitempty"`
}
