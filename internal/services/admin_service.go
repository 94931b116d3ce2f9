package services

import (
	"context"

	"collab_backend/internal/auth"
	"collab_backend/internal/logger"
	"collab_backend/internal/models"
	"collab_backend/internal/repositories"
	"collab_backend/internal/services/dto"
	"collab_backend/internal/workflow"
	"collab_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	GetStats(ctx context.Context, db *gorm.DB) (*dto.PlatformStats, error)
	ListUsers(ctx context.Context, db *gorm.DB, query *dto.AdminUserQuery) (*dto.PaginatedResponse[models.User], error)
	GetUser(ctx context.Context, db *gorm.DB, userID string) (*dto.AdminUserResponse, error)
	DeleteUser(ctx context.Context, db *gorm.DB, p auth.Principal, userID string) error
	UpdateUserStatus(ctx context.Context, db *gorm.DB, p auth.Principal, userID string, isActive bool) (*models.User, error)
	ListCampaigns(ctx context.Context, db *gorm.DB, query *dto.CampaignListQuery) (*dto.PaginatedResponse[models.BrandCampaign], error)
	UpdateCampaignStatus(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string, status models.CampaignStatus) (*models.BrandCampaign, error)
}

type AdminServiceImpl struct {
	userRepo     repositories.UserRepository
	profileRepo  repositories.ProfileRepository
	campaignRepo repositories.CampaignRepository
	draftRepo    repositories.DraftRepository
	statsRepo    repositories.StatsRepository
	pricing      Pricing
}

func NewAdminService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	campaignRepo repositories.CampaignRepository,
	draftRepo repositories.DraftRepository,
	statsRepo repositories.StatsRepository,
	pricing Pricing,
) AdminService {
	return &AdminServiceImpl{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		campaignRepo: campaignRepo,
		draftRepo:    draftRepo,
		statsRepo:    statsRepo,
		pricing:      pricing,
	}
}

func (s *AdminServiceImpl) GetStats(ctx context.Context, db *gorm.DB) (*dto.PlatformStats, error) {
	counts, err := s.statsRepo.PlatformCounts(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var total int64
	for _, n := range counts.UsersByRole {
		total += n
	}
	return &dto.PlatformStats{
		Users: dto.UserStats{
			Total:  total,
			Active: counts.ActiveUsers,
			ByRole: counts.UsersByRole,
		},
		Campaigns:   counts.CampaignsByStatus,
		Invitations: counts.InvitationsByStatus,
		Drafts:      counts.DraftsByStatus,
	}, nil
}

func (s *AdminServiceImpl) ListUsers(ctx context.Context, db *gorm.DB, query *dto.AdminUserQuery) (*dto.PaginatedResponse[models.User], error) {
	users, total, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{
		Role:     query.Role,
		IsActive: query.IsActive,
		Search:   query.Search,
		Page:     pageOf(query.Pagination),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(users, total, query.Page, query.PageSize), nil
}

func (s *AdminServiceImpl) GetUser(ctx context.Context, db *gorm.DB, userID string) (*dto.AdminUserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return &dto.AdminUserResponse{
		User:    user,
		Profile: s.pricing.ProfileResponse(user.InfluencerProfile),
	}, nil
}

// DeleteUser - жесткое удаление со всеми зависимыми записями в одной транзакции
func (s *AdminServiceImpl) DeleteUser(ctx context.Context, db *gorm.DB, p auth.Principal, userID string) error {
	tx, err := beginTx(db)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return handleRepoError(err)
	}
	if err := auth.CanDeleteUser(p, user); err != nil {
		return err
	}

	if err := s.draftRepo.DeleteByUser(tx, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.campaignRepo.DeleteInvitationsByInfluencer(tx, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.campaignRepo.DeleteByBrand(tx, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.profileRepo.DeleteByUserID(tx, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(tx, user.ID); err != nil {
		return handleRepoError(err)
	}
	if err := commit(tx); err != nil {
		return err
	}

	logger.AuditLog(p.UserID, "delete_user", "user", user.ID)
	logger.CtxInfo(ctx, "User deleted", "user_id", user.ID, "role", user.Role)
	return nil
}

// UpdateUserStatus - деактивированный пользователь не может войти.
// Уже выданные сессии действуют до истечения токена.
func (s *AdminServiceImpl) UpdateUserStatus(ctx context.Context, db *gorm.DB, p auth.Principal, userID string, isActive bool) (*models.User, error) {
	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if err := auth.CanChangeUserStatus(p, user, isActive); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateStatus(tx, user.ID, isActive); err != nil {
		return nil, handleRepoError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}
	user.IsActive = isActive

	action := "deactivate_user"
	if isActive {
		action = "activate_user"
	}
	logger.AuditLog(p.UserID, action, "user", user.ID)
	return user, nil
}

func (s *AdminServiceImpl) ListCampaigns(ctx context.Context, db *gorm.DB, query *dto.CampaignListQuery) (*dto.PaginatedResponse[models.BrandCampaign], error) {
	campaigns, total, err := s.campaignRepo.FindWithFilter(db, repositories.CampaignFilter{
		Status: query.Status,
		Page:   pageOf(query.Pagination),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(campaigns, total, query.Page, query.PageSize), nil
}

// UpdateCampaignStatus - админ выставляет любой статус, без таблицы переходов
func (s *AdminServiceImpl) UpdateCampaignStatus(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string, status models.CampaignStatus) (*models.BrandCampaign, error) {
	if !p.IsAdmin() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	campaign, err := s.campaignRepo.FindByID(tx, campaignID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	from := campaign.Status
	if err := workflow.ForceCampaignStatus(campaign, status); err != nil {
		return nil, err
	}
	if err := s.campaignRepo.UpdateWithVersion(tx, campaign); err != nil {
		return nil, handleRepoError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}

	logger.AuditLog(p.UserID, "update_campaign_status", "campaign", campaign.ID)
	logger.CtxInfo(ctx, "Campaign status set by admin", "campaign_id", campaign.ID, "from", from, "to", status)
	return campaign, nil
}
