package services

import (
	"context"
	"sort"

	"collab_backend/internal/algorithms"
	"collab_backend/internal/auth"
	"collab_backend/internal/models"
	"collab_backend/internal/repositories"
	"collab_backend/internal/services/dto"
	"collab_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type DiscoveryService interface {
	SearchInfluencers(ctx context.Context, db *gorm.DB, p auth.Principal, query *dto.DiscoveryQuery) (*dto.PaginatedResponse[dto.DiscoveryItem], error)
}

type DiscoveryServiceImpl struct {
	profileRepo  repositories.ProfileRepository
	campaignRepo repositories.CampaignRepository
	pricing      Pricing
}

func NewDiscoveryService(
	profileRepo repositories.ProfileRepository,
	campaignRepo repositories.CampaignRepository,
	pricing Pricing,
) DiscoveryService {
	return &DiscoveryServiceImpl{
		profileRepo:  profileRepo,
		campaignRepo: campaignRepo,
		pricing:      pricing,
	}
}

// SearchInfluencers: SQL-фильтры в репозитории, фильтр по цене, ранжирование
// и пагинация - в памяти, так как цена вычисляемая.
func (s *DiscoveryServiceImpl) SearchInfluencers(ctx context.Context, db *gorm.DB, p auth.Principal, query *dto.DiscoveryQuery) (*dto.PaginatedResponse[dto.DiscoveryItem], error) {
	var campaign *models.BrandCampaign
	if query.CampaignID != "" {
		c, err := s.campaignRepo.FindByID(db, query.CampaignID)
		if err != nil {
			return nil, handleRepoError(err)
		}
		if !auth.CanManageCampaign(p, c) {
			return nil, apperrors.ErrInsufficientPermissions
		}
		campaign = c
	}

	profiles, err := s.profileRepo.Search(db, repositories.ProfileFilter{
		Category:      query.Category,
		Location:      query.Location,
		MinFollowers:  query.MinFollowers,
		MaxFollowers:  query.MaxFollowers,
		MinEngagement: query.MinEngagement,
		MaxEngagement: query.MaxEngagement,
		Search:        query.Search,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.DiscoveryItem, 0, len(profiles))
	for i := range profiles {
		profile := &profiles[i]
		price := s.pricing.PriceOf(profile)
		if !algorithms.PriceInRange(price, query.MinPrice, query.MaxPrice) {
			continue
		}

		item := dto.DiscoveryItem{
			UserID:            profile.UserID,
			InstagramUsername: profile.InstagramUsername,
			ProfilePictureURL: profile.ProfilePictureURL,
			Followers:         profile.Followers,
			EngagementRate:    profile.EngagementRate,
			Category:          profile.Category,
			Location:          profile.Location,
			Slug:              profile.Slug,
			EstimatedPrice:    price,
			Currency:          s.pricing.Currency,
		}
		if profile.User != nil {
			item.Name = profile.User.Name
		}
		if campaign != nil {
			score, reasons := algorithms.CalculateMatchScore(campaign, profile, s.pricing.BaseRate)
			item.MatchScore = &score
			item.MatchReasons = reasons
		}
		items = append(items, item)
	}

	// без кампании остается порядок репозитория: по подписчикам
	if campaign != nil {
		sort.SliceStable(items, func(i, j int) bool {
			return *items[i].MatchScore > *items[j].MatchScore
		})
	}

	total := int64(len(items))
	return dto.NewPaginatedResponse(paginate(items, query.Page, query.PageSize), total, query.Page, query.PageSize), nil
}

func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
