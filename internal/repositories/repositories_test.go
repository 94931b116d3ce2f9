package repositories

import (
	"testing"
	"time"

	"collab_backend/internal/models"
	"collab_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_UniqueAndPartialUpdates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()

	brand := testutil.CreateBrand(t, db, "team@acme-corp.com")

	dup := models.NewBrandUser("Other", models.BrandAccount{
		Email: "TEAM@acme-corp.com", PasswordHash: "x", CompanyName: "Other",
	})
	assert.ErrorIs(t, repo.Create(db, dup), ErrUserAlreadyExists)

	found, err := repo.FindByEmail(db, " Team@Acme-Corp.com ")
	require.NoError(t, err)
	assert.Equal(t, brand.ID, found.ID)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(db, brand.ID, now))
	require.NoError(t, repo.UpdateStatus(db, brand.ID, false))

	reloaded, err := repo.FindByID(db, brand.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
	require.NotNil(t, reloaded.LastLogin)
	assert.Equal(t, "Acme", reloaded.CompanyName)

	assert.ErrorIs(t, repo.UpdateStatus(db, "missing", true), ErrUserNotFound)
	_, err = repo.FindByID(db, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_SaveValidatesRoleFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()

	brand := testutil.CreateBrand(t, db, "team@acme-corp.com")
	brand.CompanyName = ""
	assert.Error(t, repo.Save(db, brand))
}

func TestUserRepository_FindWithFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()

	testutil.CreateBrand(t, db, "a@acme-corp.com")
	testutil.CreateBrand(t, db, "b@globex.com")
	inf := testutil.CreateInfluencer(t, db, "priya.creates", 50000, 3.5)
	require.NoError(t, repo.UpdateStatus(db, inf.ID, false))

	users, total, err := repo.FindWithFilter(db, UserFilter{Role: models.UserRoleBrand, Page: Page{Page: 1, PageSize: 1}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 1)

	inactive := false
	users, total, err = repo.FindWithFilter(db, UserFilter{IsActive: &inactive})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, inf.ID, users[0].ID)

	_, total, err = repo.FindWithFilter(db, UserFilter{Search: "GLOBEX"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	exists, err := repo.ExistsByRole(db, models.UserRoleAdmin)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCampaignRepository_InvitationsAndVersion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCampaignRepository()

	brand := testutil.CreateBrand(t, db, "team@acme-corp.com")
	inf := testutil.CreateInfluencer(t, db, "priya.creates", 50000, 3.5)
	c := testutil.CreateCampaign(t, db, brand.ID)

	inv := &models.Invitation{CampaignID: c.ID, InfluencerID: inf.ID, Status: models.InvitationStatusPending, InvitedAt: time.Now()}
	require.NoError(t, repo.CreateInvitation(db, inv))

	again := &models.Invitation{CampaignID: c.ID, InfluencerID: inf.ID, Status: models.InvitationStatusPending, InvitedAt: time.Now()}
	assert.ErrorIs(t, repo.CreateInvitation(db, again), ErrInvitationExists)

	loaded, err := repo.FindByID(db, c.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Invitations, 1)
	assert.Equal(t, []string{"fashion"}, []string(loaded.Categories))

	stale, err := repo.FindByID(db, c.ID)
	require.NoError(t, err)

	loaded.Title = "Summer Launch v2"
	require.NoError(t, repo.UpdateWithVersion(db, loaded))
	assert.Equal(t, 1, loaded.Version)

	stale.Title = "lost update"
	assert.ErrorIs(t, repo.UpdateWithVersion(db, stale), ErrVersionConflict)
	assert.Equal(t, 0, stale.Version)

	current, err := repo.FindByID(db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Launch v2", current.Title)

	mine, total, err := repo.FindWithFilter(db, CampaignFilter{InvitedUserID: inf.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, c.ID, mine[0].ID)

	_, total, err = repo.FindWithFilter(db, CampaignFilter{InvitedUserID: "someone-else"})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCampaignRepository_DeleteByBrand(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCampaignRepository()

	brand := testutil.CreateBrand(t, db, "team@acme-corp.com")
	inf := testutil.CreateInfluencer(t, db, "priya.creates", 50000, 3.5)
	c := testutil.CreateCampaign(t, db, brand.ID)
	require.NoError(t, repo.CreateInvitation(db, &models.Invitation{
		CampaignID: c.ID, InfluencerID: inf.ID, Status: models.InvitationStatusPending, InvitedAt: time.Now(),
	}))

	require.NoError(t, repo.DeleteByBrand(db, brand.ID))

	_, err := repo.FindByID(db, c.ID)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
	invs, err := repo.FindInvitationsByInfluencer(db, inf.ID)
	require.NoError(t, err)
	assert.Empty(t, invs)
}

func TestDraftRepository_VersionedUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDraftRepository()

	d := &models.Draft{
		CampaignID: "c", InvitationID: "i", InfluencerID: "inf", BrandID: "b",
		Status: models.DraftStatusDraft,
	}
	require.NoError(t, repo.Create(db, d))

	a, err := repo.FindByID(db, d.ID)
	require.NoError(t, err)
	b, err := repo.FindByID(db, d.ID)
	require.NoError(t, err)

	a.Status = models.DraftStatusSubmitted
	a.Revisions = append(a.Revisions, models.Revision{Version: 1})
	require.NoError(t, repo.UpdateWithVersion(db, a))

	b.Status = models.DraftStatusRejected
	assert.ErrorIs(t, repo.UpdateWithVersion(db, b), ErrVersionConflict)

	got, err := repo.FindByID(db, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DraftStatusSubmitted, got.Status)
	assert.Len(t, got.Revisions, 1)
	assert.Equal(t, 1, got.Version)

	list, err := repo.FindByInvitation(db, "i")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.DeleteByUser(db, "inf"))
	_, err = repo.FindByID(db, d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestProfileRepository_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProfileRepository()

	testutil.CreateInfluencer(t, db, "small", 5000, 2)
	testutil.CreateInfluencer(t, db, "big", 500000, 4)
	hidden := testutil.CreateInfluencer(t, db, "hidden", 90000, 4)
	hidden.InfluencerProfile.IsActive = false
	require.NoError(t, repo.Save(db, hidden.InfluencerProfile))

	all, err := repo.Search(db, ProfileFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "big", all[0].InstagramUsername)
	require.NotNil(t, all[0].User)

	filtered, err := repo.Search(db, ProfileFilter{MinFollowers: 10000, Category: "FASHION", Location: "mum"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "big", filtered[0].InstagramUsername)

	taken, err := repo.SlugTaken(db, "big", "")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.SlugTaken(db, "big", all[0].ID)
	require.NoError(t, err)
	assert.False(t, taken)

	_, err = repo.FindBySlug(db, "nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestStatsRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateBrand(t, db, "team@acme-corp.com")
	testutil.CreateAdmin(t, db, "root@acme-corp.com")
	inf := testutil.CreateInfluencer(t, db, "priya.creates", 50000, 3.5)
	require.NoError(t, NewUserRepository().UpdateStatus(db, inf.ID, false))

	counts, err := NewStatsRepository().PlatformCounts(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.UsersByRole["brand"])
	assert.EqualValues(t, 1, counts.UsersByRole["influencer"])
	assert.EqualValues(t, 2, counts.ActiveUsers)
	assert.Empty(t, counts.DraftsByStatus)
}
