package workflow

import (
	"collab_backend/internal/models"
	"collab_backend/pkg/apperrors"
)

// campaignTransitions - переходы, доступные бренду. Администратор может выставить любой статус.
var campaignTransitions = map[models.CampaignStatus][]models.CampaignStatus{
	models.CampaignStatusDraft:  {models.CampaignStatusActive, models.CampaignStatusCancelled},
	models.CampaignStatusActive: {models.CampaignStatusPaused, models.CampaignStatusCompleted, models.CampaignStatusCancelled},
	models.CampaignStatusPaused: {models.CampaignStatusActive, models.CampaignStatusCancelled},
}

// ChangeCampaignStatus меняет статус кампании по таблице переходов бренда
func ChangeCampaignStatus(c *models.BrandCampaign, to models.CampaignStatus) error {
	if !to.IsValid() {
		return apperrors.ValidationError(map[string]string{"status": "Must be one of: draft, active, paused, completed, cancelled"})
	}
	for _, allowed := range campaignTransitions[c.Status] {
		if allowed == to {
			c.Status = to
			return nil
		}
	}
	return apperrors.ErrInvalidTransition("campaign", string(c.Status), string(to))
}

// ForceCampaignStatus - административная смена статуса без таблицы переходов
func ForceCampaignStatus(c *models.BrandCampaign, to models.CampaignStatus) error {
	if !to.IsValid() {
		return apperrors.ValidationError(map[string]string{"status": "Must be one of: draft, active, paused, completed, cancelled"})
	}
	c.Status = to
	return nil
}

// AcceptsInvitations - в завершенную или отмененную кампанию не приглашают
func AcceptsInvitations(c *models.BrandCampaign) bool {
	return c.Status != models.CampaignStatusCompleted && c.Status != models.CampaignStatusCancelled
}
