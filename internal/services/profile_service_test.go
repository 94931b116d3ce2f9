package services

import (
	"context"
	"net/http"
	"testing"

	"collab_backend/internal/models"
	"collab_backend/internal/services/dto"
	"collab_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Onboarding(t *testing.T) {
	env := newTestEnv(t)
	svc := env.svc.ProfileService

	reg, err := env.svc.AuthService.RegisterInfluencer(context.Background(), env.db, &dto.InfluencerRegisterRequest{
		Password: "secret123", Name: "Ria", InstagramUsername: "ria.travels",
	})
	require.NoError(t, err)
	testutil.CreateInfluencer(t, env.db, "taken", 1000, 1)

	followers, likes, comments := int64(20000), 400.0, 20.0
	category, slug := "travel", "Ria-Goes"
	profile, err := svc.UpdateOwnProfile(context.Background(), env.db, reg.User.ID, &dto.UpdateProfileRequest{
		Category:    &category,
		Followers:   &followers,
		AvgLikes:    &likes,
		AvgComments: &comments,
		Slug:        &slug,
	})
	require.NoError(t, err)
	assert.True(t, profile.ProfileCompleted)
	assert.InDelta(t, 2.1, profile.EngagementRate, 0.001)
	assert.Equal(t, int64(4200), profile.EstimatedPrice)
	assert.Equal(t, "ria-goes", profile.Slug)

	var user models.User
	require.NoError(t, env.db.First(&user, "id = ?", reg.User.ID).Error)
	assert.True(t, user.ProfileCompleted)

	takenSlug := "taken"
	_, err = svc.UpdateOwnProfile(context.Background(), env.db, reg.User.ID, &dto.UpdateProfileRequest{Slug: &takenSlug})
	assertAppError(t, err, http.StatusConflict)

	kit, err := svc.GetMediaKit(context.Background(), env.db, "ria-goes")
	require.NoError(t, err)
	assert.Equal(t, "Ria", kit.Name)
	assert.Equal(t, int64(4200), kit.EstimatedPrice)
	assert.Equal(t, "INR", kit.Currency)
}

func TestProfileService_MediaKitHidesInactive(t *testing.T) {
	env := newTestEnv(t)
	inf := testutil.CreateInfluencer(t, env.db, "priya.creates", 50000, 3.5)
	deactivate(t, env.db, inf.ID)

	_, err := env.svc.ProfileService.GetMediaKit(context.Background(), env.db, "priya.creates")
	assertAppError(t, err, http.StatusNotFound)

	_, err = env.svc.ProfileService.GetMediaKit(context.Background(), env.db, "missing")
	assertAppError(t, err, http.StatusNotFound)
}

func TestProfileService_ListInvitations(t *testing.T) {
	env := newTestEnv(t)
	f := acceptedCollaboration(t, env)

	list, err := env.svc.ProfileService.ListInvitations(context.Background(), env.db, f.influencer.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.campaign.ID, list[0].Campaign.ID)
	assert.Equal(t, "Acme", list[0].Campaign.BrandName)
	assert.Equal(t, models.InvitationStatusAccepted, list[0].Invitation.Status)
}
