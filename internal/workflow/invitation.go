// Package workflow содержит переходы статусов приглашений и черновиков.
// Функции меняют только переданные структуры; сохранение - на стороне сервиса.
package workflow

import (
	"time"

	"collab_backend/internal/models"
	"collab_backend/pkg/apperrors"
)

// Invite добавляет pending-приглашение в кампанию.
// Любое существующее приглашение этого инфлюенсера (в любом статусе) - конфликт.
func Invite(campaign *models.BrandCampaign, influencerID string, agreedPrice *int64, now time.Time) (*models.Invitation, error) {
	if influencerID == "" {
		return nil, apperrors.ValidationError(map[string]string{"influencerId": "This field is required"})
	}
	if campaign.FindInvitation(influencerID) != nil {
		return nil, apperrors.ErrDuplicateInvitation
	}

	campaign.Invitations = append(campaign.Invitations, models.Invitation{
		CampaignID:   campaign.ID,
		InfluencerID: influencerID,
		Status:       models.InvitationStatusPending,
		InvitedAt:    now,
		AgreedPrice:  agreedPrice,
	})
	return &campaign.Invitations[len(campaign.Invitations)-1], nil
}

// Respond фиксирует ответ инфлюенсера. Ответить можно только один раз.
func Respond(campaign *models.BrandCampaign, influencerID string, decision models.InvitationStatus, now time.Time) (*models.Invitation, error) {
	if decision != models.InvitationStatusAccepted && decision != models.InvitationStatusRejected {
		return nil, apperrors.ValidationError(map[string]string{"decision": "Must be one of: accepted, rejected"})
	}

	inv := campaign.FindInvitation(influencerID)
	if inv == nil {
		return nil, apperrors.ErrInvitationNotFound
	}
	if inv.Status != models.InvitationStatusPending {
		return nil, apperrors.ErrAlreadyResponded.WithDetails(map[string]string{"status": string(inv.Status)})
	}

	inv.Status = decision
	inv.RespondedAt = &now
	return inv, nil
}
