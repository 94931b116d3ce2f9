package auth

import (
	"testing"

	"collab_backend/internal/models"
	"collab_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

var (
	admin      = Principal{UserID: "admin-1", Role: models.UserRoleAdmin}
	owner      = Principal{UserID: "brand-1", Role: models.UserRoleBrand}
	otherBrand = Principal{UserID: "brand-2", Role: models.UserRoleBrand}
	invited    = Principal{UserID: "inf-1", Role: models.UserRoleInfluencer}
	stranger   = Principal{UserID: "inf-9", Role: models.UserRoleInfluencer}
)

func campaignWith(status models.InvitationStatus) *models.BrandCampaign {
	c := &models.BrandCampaign{BrandID: "brand-1"}
	c.Invitations = []models.Invitation{{InfluencerID: "inf-1", Status: status}}
	return c
}

func TestCanManageCampaign(t *testing.T) {
	c := campaignWith(models.InvitationStatusAccepted)
	assert.True(t, CanManageCampaign(owner, c))
	assert.True(t, CanManageCampaign(admin, c))
	assert.False(t, CanManageCampaign(otherBrand, c))
	assert.False(t, CanManageCampaign(invited, c))

	// инфлюенсер с id бренда все равно не владелец
	assert.False(t, CanManageCampaign(Principal{UserID: "brand-1", Role: models.UserRoleInfluencer}, c))
}

func TestInvitationPredicates(t *testing.T) {
	pending := campaignWith(models.InvitationStatusPending)
	accepted := campaignWith(models.InvitationStatusAccepted)
	rejected := campaignWith(models.InvitationStatusRejected)

	assert.True(t, CanRespondToInvitation(invited, pending))
	assert.False(t, CanRespondToInvitation(invited, accepted))
	assert.False(t, CanRespondToInvitation(stranger, pending))
	assert.False(t, CanRespondToInvitation(owner, pending))

	assert.True(t, CanAccessDraftAsInfluencer(invited, accepted))
	assert.False(t, CanAccessDraftAsInfluencer(invited, pending))
	assert.False(t, CanAccessDraftAsInfluencer(invited, rejected))
	assert.False(t, CanAccessDraftAsInfluencer(stranger, accepted))

	assert.True(t, CanViewCampaign(invited, rejected))
	assert.False(t, CanViewCampaign(stranger, rejected))
}

func TestCanReviewDraft(t *testing.T) {
	d := &models.Draft{BrandID: "brand-1", InfluencerID: "inf-1"}
	assert.True(t, CanReviewDraft(owner, d))
	assert.True(t, CanReviewDraft(admin, d))
	assert.False(t, CanReviewDraft(otherBrand, d))
	assert.False(t, CanReviewDraft(invited, d))
}

func TestCanChangeUserStatus(t *testing.T) {
	self := &models.User{Role: models.UserRoleAdmin}
	self.ID = "admin-1"
	otherAdmin := &models.User{Role: models.UserRoleAdmin}
	otherAdmin.ID = "admin-2"
	brand := &models.User{Role: models.UserRoleBrand}
	brand.ID = "brand-1"

	assert.NoError(t, CanChangeUserStatus(admin, brand, false))
	assert.NoError(t, CanChangeUserStatus(admin, self, false))
	assert.NoError(t, CanChangeUserStatus(admin, otherAdmin, true))
	assert.ErrorIs(t, CanChangeUserStatus(admin, otherAdmin, false), apperrors.ErrCannotModifyOtherAdmin)
	assert.ErrorIs(t, CanChangeUserStatus(owner, brand, false), apperrors.ErrInsufficientPermissions)

	assert.NoError(t, CanDeleteUser(admin, self))
	assert.ErrorIs(t, CanDeleteUser(admin, otherAdmin), apperrors.ErrCannotModifyOtherAdmin)
}
