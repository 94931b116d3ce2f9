package services

import (
	"context"
	"testing"

	"collab_backend/internal/models"
	"collab_backend/internal/services/dto"
	"collab_backend/internal/testutil"
	"collab_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDiscoveryService_PriceFilterAndPaging(t *testing.T) {
	env := newTestEnv(t)
	brand := testutil.CreateBrand(t, env.db, "team@acme-corp.com")

	testutil.CreateInfluencer(t, env.db, "big.one", 200000, 4)  // 80000
	testutil.CreateInfluencer(t, env.db, "mid.one", 50000, 3.5) // 17500
	testutil.CreateInfluencer(t, env.db, "small.one", 5000, 2)  // 1000
	testutil.CreateInfluencer(t, env.db, "tiny.one", 1000, 1)   // 100 -> 500
	hidden := testutil.CreateInfluencer(t, env.db, "off.one", 90000, 5)
	deactivate(t, env.db, hidden.ID)

	svc := env.svc.DiscoveryService

	all, err := svc.SearchInfluencers(context.Background(), env.db, principalOf(brand), &dto.DiscoveryQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)
	assert.Equal(t, "big.one", all.Items[0].InstagramUsername)
	assert.Equal(t, int64(500), all.Items[3].EstimatedPrice)
	assert.Nil(t, all.Items[0].MatchScore)

	ranged, err := svc.SearchInfluencers(context.Background(), env.db, principalOf(brand), &dto.DiscoveryQuery{
		MinPrice: 1000,
		MaxPrice: 20000,
	})
	require.NoError(t, err)
	require.Len(t, ranged.Items, 2)
	assert.Equal(t, "mid.one", ranged.Items[0].InstagramUsername)
	assert.Equal(t, "small.one", ranged.Items[1].InstagramUsername)

	page, err := svc.SearchInfluencers(context.Background(), env.db, principalOf(brand), &dto.DiscoveryQuery{
		Pagination: dto.Pagination{Page: 2, PageSize: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
}

func TestDiscoveryService_RanksByCampaignMatch(t *testing.T) {
	env := newTestEnv(t)
	brand := testutil.CreateBrand(t, env.db, "team@acme-corp.com")
	other := testutil.CreateBrand(t, env.db, "team@globex.com")

	campaign := testutil.CreateCampaign(t, env.db, brand.ID)
	campaign.Categories = datatypes.JSONSlice[string]{"travel"}
	campaign.MinFollowers = 10000
	campaign.MaxFollowers = 100000
	require.NoError(t, env.db.Save(campaign).Error)

	testutil.CreateInfluencer(t, env.db, "fashion.big", 500000, 4)
	traveller := testutil.CreateInfluencer(t, env.db, "travel.mid", 40000, 3)
	require.NoError(t, env.db.Model(&models.InfluencerProfile{}).
		Where("user_id = ?", traveller.ID).
		Update("category", "travel").Error)

	svc := env.svc.DiscoveryService
	res, err := svc.SearchInfluencers(context.Background(), env.db, principalOf(brand), &dto.DiscoveryQuery{CampaignID: campaign.ID})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "travel.mid", res.Items[0].InstagramUsername)
	require.NotNil(t, res.Items[0].MatchScore)
	assert.Greater(t, *res.Items[0].MatchScore, *res.Items[1].MatchScore)
	assert.NotEmpty(t, res.Items[0].MatchReasons)

	_, err = svc.SearchInfluencers(context.Background(), env.db, principalOf(other), &dto.DiscoveryQuery{CampaignID: campaign.ID})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, items, paginate(items, 0, 0))
	assert.Equal(t, []int{3, 4}, paginate(items, 2, 2))
	assert.Equal(t, []int{5}, paginate(items, 3, 2))
	assert.Empty(t, paginate(items, 4, 2))
}
