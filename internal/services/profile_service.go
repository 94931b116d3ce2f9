package services

import (
	"context"
	"strings"

	"collab_backend/internal/algorithms"
	"collab_backend/internal/logger"
	"collab_backend/internal/repositories"
	"collab_backend/internal/services/dto"
	"collab_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetOwnProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	UpdateOwnProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	GetMediaKit(ctx context.Context, db *gorm.DB, slug string) (*dto.MediaKitResponse, error)
	ListInvitations(ctx context.Context, db *gorm.DB, userID string) ([]dto.InfluencerInvitation, error)
}

type ProfileServiceImpl struct {
	userRepo     repositories.UserRepository
	profileRepo  repositories.ProfileRepository
	campaignRepo repositories.CampaignRepository
	pricing      Pricing
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	campaignRepo repositories.CampaignRepository,
	pricing Pricing,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		campaignRepo: campaignRepo,
		pricing:      pricing,
	}
}

func (s *ProfileServiceImpl) GetOwnProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return s.pricing.ProfileResponse(profile), nil
}

// UpdateOwnProfile - онбординг. Вовлеченность пересчитывается из счетчиков,
// профиль и пользователь помечаются заполненными.
func (s *ProfileServiceImpl) UpdateOwnProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	profile, err := s.profileRepo.FindByUserID(tx, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	if req.Category != nil {
		profile.Category = strings.TrimSpace(*req.Category)
	}
	if req.Bio != nil {
		profile.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.Location != nil {
		profile.Location = strings.TrimSpace(*req.Location)
	}
	if req.ProfilePictureURL != nil {
		profile.ProfilePictureURL = *req.ProfilePictureURL
	}
	if req.Following != nil {
		profile.Following = *req.Following
	}

	countersChanged := req.Followers != nil || req.AvgLikes != nil || req.AvgComments != nil
	if req.Followers != nil {
		profile.Followers = *req.Followers
	}
	if req.AvgLikes != nil {
		profile.AvgLikes = *req.AvgLikes
	}
	if req.AvgComments != nil {
		profile.AvgComments = *req.AvgComments
	}
	if countersChanged {
		rate, err := algorithms.EngagementRate(profile.AvgLikes, profile.AvgComments, float64(profile.Followers))
		if err != nil {
			return nil, err
		}
		profile.EngagementRate = rate
	}

	if req.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*req.Slug))
		if slug != profile.Slug {
			taken, err := s.profileRepo.SlugTaken(tx, slug, profile.ID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			if taken {
				return nil, handleRepoError(repositories.ErrSlugTaken)
			}
			profile.Slug = slug
		}
	}

	profile.ProfileCompleted = true
	if err := s.profileRepo.Save(tx, profile); err != nil {
		return nil, handleRepoError(err)
	}
	if err := s.userRepo.SetProfileCompleted(tx, userID); err != nil {
		return nil, handleRepoError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Influencer profile updated",
		"user_id", userID,
		"followers", profile.Followers,
		"engagement_rate", profile.EngagementRate,
	)
	return s.pricing.ProfileResponse(profile), nil
}

// GetMediaKit - публичная страница. Неактивный профиль или пользователь - 404.
func (s *ProfileServiceImpl) GetMediaKit(ctx context.Context, db *gorm.DB, slug string) (*dto.MediaKitResponse, error) {
	profile, err := s.profileRepo.FindBySlug(db, strings.TrimSpace(slug))
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !profile.IsActive || profile.User == nil || !profile.User.IsActive {
		return nil, handleRepoError(repositories.ErrProfileNotFound)
	}

	return &dto.MediaKitResponse{
		Name:              profile.User.Name,
		InstagramUsername: profile.InstagramUsername,
		ProfilePictureURL: profile.ProfilePictureURL,
		Followers:         profile.Followers,
		MediaCount:        profile.MediaCount,
		AvgLikes:          profile.AvgLikes,
		AvgComments:       profile.AvgComments,
		EngagementRate:    profile.EngagementRate,
		Category:          profile.Category,
		Bio:               profile.Bio,
		Location:          profile.Location,
		Slug:              profile.Slug,
		EstimatedPrice:    s.pricing.PriceOf(profile),
		Currency:          s.pricing.Currency,
	}, nil
}

// ListInvitations - кампании, куда приглашен инфлюенсер, с его приглашением
func (s *ProfileServiceImpl) ListInvitations(ctx context.Context, db *gorm.DB, userID string) ([]dto.InfluencerInvitation, error) {
	campaigns, _, err := s.campaignRepo.FindWithFilter(db, repositories.CampaignFilter{InvitedUserID: userID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.InfluencerInvitation, 0, len(campaigns))
	for i := range campaigns {
		inv := campaigns[i].FindInvitation(userID)
		if inv == nil {
			continue
		}
		result = append(result, dto.InfluencerInvitation{
			Campaign:   dto.NewCampaignSummary(&campaigns[i]),
			Invitation: *inv,
		})
	}
	return result, nil
}
