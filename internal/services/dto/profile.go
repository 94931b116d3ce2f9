package dto

import (
	"collab_backend/internal/models"
)

// ProfileResponse - профиль с вычисленной ценой
type ProfileResponse struct {
	models.InfluencerProfile
	EstimatedPrice int64  `json:"estimatedPrice"`
	Currency       string `json:"currency"`
}

// UpdateProfileRequest - онбординг. Пустые поля не меняются.
type UpdateProfileRequest struct {
	Category          *string  `json:"category" validate:"omitempty,max=50"`
	Bio               *string  `json:"bio" validate:"omitempty,max=1000"`
	Location          *string  `json:"location" validate:"omitempty,max=100"`
	ProfilePictureURL *string  `json:"profilePictureUrl" validate:"omitempty,url"`
	Followers         *int64   `json:"followers" validate:"omitempty,gte=0"`
	Following         *int64   `json:"following" validate:"omitempty,gte=0"`
	AvgLikes          *float64 `json:"avgLikes" validate:"omitempty,gte=0"`
	AvgComments       *float64 `json:"avgComments" validate:"omitempty,gte=0"`
	Slug              *string  `json:"slug" validate:"omitempty,slug"`
}

// MediaKitResponse - публичная карточка инфлюенсера
type MediaKitResponse struct {
	Name              string  `json:"name"`
	InstagramUsername string  `json:"instagramUsername"`
	ProfilePictureURL string  `json:"profilePictureUrl"`
	Followers         int64   `json:"followers"`
	MediaCount        int64   `json:"mediaCount"`
	AvgLikes          float64 `json:"avgLikes"`
	AvgComments       float64 `json:"avgComments"`
	EngagementRate    float64 `json:"engagementRate"`
	Category          string  `json:"category"`
	Bio               string  `json:"bio"`
	Location          string  `json:"location"`
	Slug              string  `json:"slug"`
	EstimatedPrice    int64   `json:"estimatedPrice"`
	Currency          string  `json:"currency"`
}

// InfluencerInvitation - кампания, куда приглашен инфлюенсер, и его приглашение
type InfluencerInvitation struct {
	Campaign   CampaignSummary   `json:"campaign"`
	Invitation models.Invitation `json:"invitation"`
}
