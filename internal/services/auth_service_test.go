package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"collab_backend/internal/instagram"
	"collab_backend/internal/models"
	"collab_backend/internal/services/dto"
	"collab_backend/internal/testutil"
	"collab_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterBrand(t *testing.T) {
	env := newTestEnv(t)
	svc := env.svc.AuthService

	resp, err := svc.RegisterBrand(context.Background(), env.db, &dto.BrandRegisterRequest{
		Email:       "team@acme-corp.com",
		Password:    "secret123",
		Name:        "Jane",
		CompanyName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleBrand, resp.User.Role)
	assert.True(t, resp.User.ProfileCompleted)
	assert.Nil(t, resp.Profile)
	assert.NotEmpty(t, resp.Token)

	claims, err := env.tokens.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.UserRoleBrand, claims.Role)

	_, err = svc.RegisterBrand(context.Background(), env.db, &dto.BrandRegisterRequest{
		Email: "TEAM@acme-corp.com", Password: "secret123", Name: "Dup", CompanyName: "Dup",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = svc.RegisterBrand(context.Background(), env.db, &dto.BrandRegisterRequest{
		Email: "someone@gmail.com", Password: "secret123", Name: "Free", CompanyName: "Free",
	})
	assert.ErrorIs(t, err, apperrors.ErrBusinessEmailRequired)
}

func TestAuthService_RegisterInfluencerAllocatesSlug(t *testing.T) {
	env := newTestEnv(t)
	svc := env.svc.AuthService

	testutil.CreateInfluencer(t, env.db, "jane-doe", 1000, 2)

	resp, err := svc.RegisterInfluencer(context.Background(), env.db, &dto.InfluencerRegisterRequest{
		Password:          "secret123",
		Name:              "Jane",
		InstagramUsername: "@Jane.Doe",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "jane.doe", resp.Profile.InstagramUsername)
	assert.Equal(t, "jane-doe-2", resp.Profile.Slug)
	assert.False(t, resp.Profile.ProfileCompleted)
	assert.Zero(t, resp.Profile.EstimatedPrice)

	_, err = svc.RegisterInfluencer(context.Background(), env.db, &dto.InfluencerRegisterRequest{
		Password: "secret123", Name: "Again", InstagramUsername: "jane.doe",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
}

func TestAuthService_LoginRules(t *testing.T) {
	env := newTestEnv(t)
	svc := env.svc.AuthService

	brand := testutil.CreateBrand(t, env.db, "team@acme-corp.com")
	inf := testutil.CreateInfluencer(t, env.db, "priya.creates", 50000, 3.5)

	resp, err := svc.LoginBrand(context.Background(), env.db, &dto.LoginRequest{Email: "team@acme-corp.com", Password: testutil.Password})
	require.NoError(t, err)
	assert.Equal(t, brand.ID, resp.User.ID)
	assert.NotNil(t, resp.User.LastLogin)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.LoginBrand(context.Background(), env.db, &dto.LoginRequest{Email: "team@acme-corp.com", Password: "nope12345"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong role", func(t *testing.T) {
		_, err := svc.LoginAdmin(context.Background(), env.db, &dto.LoginRequest{Email: "team@acme-corp.com", Password: testutil.Password})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.LoginBrand(context.Background(), env.db, &dto.LoginRequest{Email: "ghost@acme-corp.com", Password: testutil.Password})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("influencer by username", func(t *testing.T) {
		resp, err := svc.LoginInfluencer(context.Background(), env.db, &dto.InfluencerLoginRequest{
			InstagramUsername: "@Priya.Creates", Password: testutil.Password,
		})
		require.NoError(t, err)
		assert.Equal(t, inf.ID, resp.User.ID)
		require.NotNil(t, resp.Profile)
		assert.Equal(t, "priya.creates", resp.Profile.Slug)
	})

	t.Run("deactivated account", func(t *testing.T) {
		deactivate(t, env.db, brand.ID)
		_, err := svc.LoginBrand(context.Background(), env.db, &dto.LoginRequest{Email: "team@acme-corp.com", Password: testutil.Password})
		assert.ErrorIs(t, err, apperrors.ErrAccountInactive)

		_, err = svc.Me(context.Background(), env.db, brand.ID)
		assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
	})
}

func TestAuthService_SetupAdmin(t *testing.T) {
	env := newTestEnv(t)
	svc := env.svc.AuthService

	req := &dto.AdminSetupRequest{SetupKey: "wrong", Email: "root@platform.io", Password: "secret123", Name: "Root"}
	_, err := svc.SetupAdmin(context.Background(), env.db, req)
	assertAppError(t, err, http.StatusForbidden)

	req.SetupKey = "setup-key"
	resp, err := svc.SetupAdmin(context.Background(), env.db, req)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, resp.User.Role)

	req.Email = "second@platform.io"
	_, err = svc.SetupAdmin(context.Background(), env.db, req)
	assert.ErrorIs(t, err, apperrors.ErrAdminAlreadyExists)

	// сид при старте не падает, если админ уже есть
	assert.NoError(t, svc.SeedFirstAdmin(context.Background(), env.db, "seed@platform.io", "secret123"))
}

func TestAuthService_InstagramCallback(t *testing.T) {
	env := newTestEnv(t)
	svc := env.svc.AuthService

	env.ig.account = &instagram.Account{
		AccessToken: "ig-token",
		Profile: instagram.Profile{
			ID:             "1789",
			Username:       "Travel.Ria",
			Name:           "Ria",
			FollowersCount: 20000,
			FollowsCount:   300,
			MediaCount:     2,
		},
		Media: []instagram.Media{
			{LikeCount: 500, CommentsCount: 20},
			{LikeCount: 300, CommentsCount: 20},
		},
	}

	resp, err := svc.InstagramCallback(context.Background(), env.db, "code")
	require.NoError(t, err)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "travel.ria", resp.Profile.InstagramUsername)
	assert.Equal(t, "travel-ria", resp.Profile.Slug)
	assert.InDelta(t, 420.0, resp.Profile.AvgLikes+resp.Profile.AvgComments, 0.001)
	assert.InDelta(t, 2.1, resp.Profile.EngagementRate, 0.001)
	assert.NotNil(t, resp.Profile.StatsSyncedAt)

	// повторный вход обновляет того же пользователя
	env.ig.account.Profile.FollowersCount = 40000
	again, err := svc.InstagramCallback(context.Background(), env.db, "code")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)
	assert.Equal(t, resp.Profile.ID, again.Profile.ID)
	assert.Equal(t, int64(40000), again.Profile.Followers)

	var users int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestAuthService_InstagramCallbackStageErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := env.svc.AuthService

	env.ig.err = &instagram.StageError{Stage: instagram.StageTokenExchange, Err: errors.New("bad code")}
	_, err := svc.InstagramCallback(context.Background(), env.db, "code")
	assertAppError(t, err, http.StatusBadRequest)

	env.ig.err = &instagram.StageError{Stage: instagram.StageMediaFetch, Err: errors.New("timeout")}
	_, err = svc.InstagramCallback(context.Background(), env.db, "code")
	assertAppError(t, err, http.StatusInternalServerError)

	var users int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}
