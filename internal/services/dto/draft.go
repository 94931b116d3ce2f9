package dto

import (
	"time"

	"collab_backend/internal/models"
	"collab_backend/internal/workflow"
)

type MediaItemRequest struct {
	URL         string `json:"url" validate:"required,max=2048"`
	Type        string `json:"type" validate:"required,oneof=image video"`
	Caption     string `json:"caption" validate:"omitempty,max=2200"`
	ContentType string `json:"contentType" validate:"omitempty,max=100"`
}

type DraftContentRequest struct {
	Type     models.ContentType `json:"type" validate:"required,is-content-type"`
	Caption  string             `json:"caption" validate:"omitempty,max=2200"`
	Hashtags []string           `json:"hashtags" validate:"omitempty,max=30,dive,max=100"`
	Mentions []string           `json:"mentions" validate:"omitempty,max=20,dive,max=100"`
	Media    []MediaItemRequest `json:"media" validate:"omitempty,max=10,dive"`
}

func (r *DraftContentRequest) ToModel() models.DraftContent {
	media := make([]models.MediaItem, 0, len(r.Media))
	for _, m := range r.Media {
		media = append(media, models.MediaItem{
			URL:         m.URL,
			Type:        m.Type,
			Caption:     m.Caption,
			ContentType: m.ContentType,
		})
	}
	hashtags := r.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	mentions := r.Mentions
	if mentions == nil {
		mentions = []string{}
	}
	return models.DraftContent{
		Type:     r.Type,
		Caption:  r.Caption,
		Hashtags: hashtags,
		Mentions: mentions,
		Media:    media,
	}
}

type DeadlinesRequest struct {
	DraftSubmission *time.Time `json:"draftSubmission"`
	FinalApproval   *time.Time `json:"finalApproval"`
	Publication     *time.Time `json:"publication"`
}

type CreateDraftRequest struct {
	Content   DraftContentRequest `json:"content"`
	Deadlines *DeadlinesRequest   `json:"deadlines"`
}

type UpdateDraftRequest struct {
	Content DraftContentRequest `json:"content"`
}

// SubmitDraftRequest - контент обязателен только при повторной отправке
type SubmitDraftRequest struct {
	Content *DraftContentRequest `json:"content"`
}

type ReviewDraftRequest struct {
	Action  workflow.ReviewAction `json:"action" validate:"required,is-review-action"`
	Message string                `json:"message" validate:"omitempty,max=2000"`
}

type FeedbackRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type PublishDraftRequest struct {
	PostURL string `json:"postUrl" validate:"required,url,max=2048"`
}

// DraftResponse - черновик и производные поля
type DraftResponse struct {
	models.Draft
	CurrentVersion int  `json:"currentVersion"`
	IsOverdue      bool `json:"isOverdue"`
}

func NewDraftResponse(d *models.Draft, now time.Time) *DraftResponse {
	return &DraftResponse{
		Draft:          *d,
		CurrentVersion: d.CurrentVersion(),
		IsOverdue:      workflow.IsOverdue(d, now),
	}
}

// CollaborationResponse - кампания, принятое приглашение и черновики
type CollaborationResponse struct {
	Campaign   CampaignSummary   `json:"campaign"`
	Invitation models.Invitation `json:"invitation"`
	Influencer *models.User      `json:"influencer,omitempty"`
	Drafts     []*DraftResponse  `json:"drafts"`
}
