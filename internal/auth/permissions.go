package auth

import (
	"collab_backend/internal/models"
	"collab_backend/pkg/apperrors"
)

// Principal - проверенная сессия
type Principal struct {
	UserID string
	Role   models.UserRole
}

func (p Principal) IsAdmin() bool      { return p.Role == models.UserRoleAdmin }
func (p Principal) IsBrand() bool      { return p.Role == models.UserRoleBrand }
func (p Principal) IsInfluencer() bool { return p.Role == models.UserRoleInfluencer }

// CanManageCampaign - владелец кампании или админ
func CanManageCampaign(p Principal, c *models.BrandCampaign) bool {
	if p.IsAdmin() {
		return true
	}
	return p.IsBrand() && c.BrandID == p.UserID
}

// CanRespondToInvitation - инфлюенсер с pending-приглашением
func CanRespondToInvitation(p Principal, c *models.BrandCampaign) bool {
	return p.IsInfluencer() && c.HasInvitationWithStatus(p.UserID, models.InvitationStatusPending)
}

// CanAccessDraftAsInfluencer - инфлюенсер с принятым приглашением
func CanAccessDraftAsInfluencer(p Principal, c *models.BrandCampaign) bool {
	return p.IsInfluencer() && c.HasInvitationWithStatus(p.UserID, models.InvitationStatusAccepted)
}

// CanViewCampaign - владелец, админ или любой приглашенный инфлюенсер
func CanViewCampaign(p Principal, c *models.BrandCampaign) bool {
	if CanManageCampaign(p, c) {
		return true
	}
	return p.IsInfluencer() && c.FindInvitation(p.UserID) != nil
}

// CanReviewDraft - бренд-владелец черновика или админ
func CanReviewDraft(p Principal, d *models.Draft) bool {
	if p.IsAdmin() {
		return true
	}
	return p.IsBrand() && d.BrandID == p.UserID
}

// CanChangeUserStatus - только админ; другого админа деактивировать нельзя, себя можно
func CanChangeUserStatus(p Principal, target *models.User, active bool) error {
	if !p.IsAdmin() {
		return apperrors.ErrInsufficientPermissions
	}
	if !active && target.Role == models.UserRoleAdmin && target.ID != p.UserID {
		return apperrors.ErrCannotModifyOtherAdmin
	}
	return nil
}

// CanDeleteUser - те же правила, что и для деактивации
func CanDeleteUser(p Principal, target *models.User) error {
	return CanChangeUserStatus(p, target, false)
}
