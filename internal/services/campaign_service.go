package services

import (
	"context"
	"errors"
	"strings"

	"collab_backend/internal/auth"
	"collab_backend/internal/email"
	"collab_backend/internal/logger"
	"collab_backend/internal/metrics"
	"collab_backend/internal/models"
	"collab_backend/internal/repositories"
	"collab_backend/internal/services/dto"
	"collab_backend/internal/workflow"
	"collab_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CampaignService interface {
	ListCampaigns(ctx context.Context, db *gorm.DB, p auth.Principal, query *dto.CampaignListQuery) (*dto.PaginatedResponse[models.BrandCampaign], error)
	CreateCampaign(ctx context.Context, db *gorm.DB, brandID string, req *dto.CreateCampaignRequest) (*models.BrandCampaign, error)
	GetCampaign(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string) (*models.BrandCampaign, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string, status models.CampaignStatus) (*models.BrandCampaign, error)
	Invite(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string, req *dto.InviteRequest) (*models.Invitation, error)
	Respond(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string, decision models.InvitationStatus) (*models.Invitation, error)
}

type CampaignServiceImpl struct {
	campaignRepo repositories.CampaignRepository
	userRepo     repositories.UserRepository
	notifier     Notifier
	pricing      Pricing
}

func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
	pricing Pricing,
) CampaignService {
	return &CampaignServiceImpl{
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		pricing:      pricing,
	}
}

// ListCampaigns: бренд видит свои, админ - все, инфлюенсер - те, куда приглашен
func (s *CampaignServiceImpl) ListCampaigns(ctx context.Context, db *gorm.DB, p auth.Principal, query *dto.CampaignListQuery) (*dto.PaginatedResponse[models.BrandCampaign], error) {
	filter := repositories.CampaignFilter{
		Status: query.Status,
		Page:   pageOf(query.Pagination),
	}
	switch {
	case p.IsAdmin():
	case p.IsBrand():
		filter.BrandID = p.UserID
	case p.IsInfluencer():
		filter.InvitedUserID = p.UserID
	default:
		return nil, apperrors.ErrInsufficientPermissions
	}

	campaigns, total, err := s.campaignRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if p.IsInfluencer() {
		for i := range campaigns {
			onlyOwnInvitation(&campaigns[i], p.UserID)
		}
	}
	return dto.NewPaginatedResponse(campaigns, total, query.Page, query.PageSize), nil
}

func (s *CampaignServiceImpl) CreateCampaign(ctx context.Context, db *gorm.DB, brandID string, req *dto.CreateCampaignRequest) (*models.BrandCampaign, error) {
	if req.Budget == nil || req.Budget.Max <= req.Budget.Min {
		return nil, apperrors.ErrInvalidBudget
	}
	if req.Timeline == nil || req.Timeline.ApplicationDeadline == nil ||
		req.Timeline.ContentDeadline == nil || req.Timeline.PublishDate == nil {
		return nil, apperrors.ValidationError(map[string]string{"timeline": "applicationDeadline, contentDeadline and publishDate are required"})
	}

	categories := make([]string, 0, len(req.Targeting.Categories))
	for _, c := range req.Targeting.Categories {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}

	campaign := &models.BrandCampaign{
		BrandID:             brandID,
		Title:               strings.TrimSpace(req.Title),
		Description:         strings.TrimSpace(req.Description),
		Categories:          datatypes.JSONSlice[string](categories),
		MinFollowers:        req.Targeting.MinFollowers,
		MaxFollowers:        req.Targeting.MaxFollowers,
		MinEngagement:       req.Targeting.MinEngagement,
		MaxEngagement:       req.Targeting.MaxEngagement,
		Location:            strings.TrimSpace(req.Targeting.Location),
		BudgetMin:           req.Budget.Min,
		BudgetMax:           req.Budget.Max,
		ApplicationDeadline: req.Timeline.ApplicationDeadline.UTC(),
		ContentDeadline:     req.Timeline.ContentDeadline.UTC(),
		PublishDate:         req.Timeline.PublishDate.UTC(),
		Status:              models.CampaignStatusDraft,
		Version:             1,
	}
	if req.Targeting.Demographics != nil {
		campaign.Demographics = datatypes.NewJSONType(*req.Targeting.Demographics)
	}
	if req.Requirements != nil {
		campaign.Requirements = datatypes.NewJSONType(*req.Requirements)
	}

	if err := s.campaignRepo.Create(db, campaign); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Campaign created", "campaign_id", campaign.ID, "brand_id", brandID)
	return campaign, nil
}

// GetCampaign: владелец и админ видят все приглашения, инфлюенсер - только свое
func (s *CampaignServiceImpl) GetCampaign(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string) (*models.BrandCampaign, error) {
	campaign, err := s.campaignRepo.FindByID(db, campaignID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanViewCampaign(p, campaign) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if !auth.CanManageCampaign(p, campaign) {
		onlyOwnInvitation(campaign, p.UserID)
	}
	return campaign, nil
}

// UpdateStatus - смена статуса брендом по таблице переходов
func (s *CampaignServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string, status models.CampaignStatus) (*models.BrandCampaign, error) {
	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	campaign, err := s.campaignRepo.FindByID(tx, campaignID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanManageCampaign(p, campaign) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	from := campaign.Status
	if err := workflow.ChangeCampaignStatus(campaign, status); err != nil {
		return nil, err
	}
	if err := s.campaignRepo.UpdateWithVersion(tx, campaign); err != nil {
		return nil, handleRepoError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Campaign status changed", "campaign_id", campaign.ID, "from", from, "to", status)
	return campaign, nil
}

// Invite: проверка владельца и инфлюенсера, переход в машине состояний,
// затем CAS по версии кампании и вставка приглашения в одной транзакции.
func (s *CampaignServiceImpl) Invite(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string, req *dto.InviteRequest) (*models.Invitation, error) {
	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	campaign, err := s.campaignRepo.FindByID(tx, campaignID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanManageCampaign(p, campaign) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if !workflow.AcceptsInvitations(campaign) {
		return nil, apperrors.ErrInvalidTransition("campaign", string(campaign.Status), "invite")
	}

	influencer, err := s.userRepo.FindByID(tx, req.InfluencerID)
	if err != nil {
		if isUserNotFound(err) {
			return nil, apperrors.NewNotFoundError("user", "Influencer not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if influencer.Role != models.UserRoleInfluencer {
		return nil, apperrors.ValidationError(map[string]string{"influencerId": "User is not an influencer"})
	}
	if !influencer.IsActive {
		return nil, apperrors.ValidationError(map[string]string{"influencerId": "Influencer account is inactive"})
	}

	inv, err := workflow.Invite(campaign, influencer.ID, req.AgreedPrice, nowFunc())
	if err != nil {
		return nil, err
	}
	if err := s.campaignRepo.UpdateWithVersion(tx, campaign); err != nil {
		return nil, handleRepoError(err)
	}
	if err := s.campaignRepo.CreateInvitation(tx, inv); err != nil {
		return nil, handleRepoError(err)
	}

	brand, err := s.userRepo.FindByID(tx, campaign.BrandID)
	if err != nil && !isUserNotFound(err) {
		return nil, apperrors.InternalError(err)
	}

	if err := commit(tx); err != nil {
		return nil, err
	}

	metrics.RecordInvitation(string(models.InvitationStatusPending))
	logger.CtxInfo(ctx, "Influencer invited",
		"campaign_id", campaign.ID,
		"influencer_id", influencer.ID,
		"invitation_id", inv.ID,
	)

	data := email.TemplateData{
		"BrandName":     displayName(brand),
		"CampaignTitle": campaign.Title,
		"Currency":      s.pricing.Currency,
	}
	if inv.AgreedPrice != nil {
		data["AgreedPrice"] = *inv.AgreedPrice
	}
	s.notifier.Notify(ctx, Notification{
		Recipient: influencer,
		Event:     EventInvitationReceived,
		Subject:   "New campaign invitation: " + campaign.Title,
		Template:  email.TemplateInvitationReceived,
		Data:      data,
		Payload: map[string]any{
			"campaignId":   campaign.ID,
			"invitationId": inv.ID,
			"title":        campaign.Title,
		},
	})

	result := *inv
	return &result, nil
}

// Respond - ответ инфлюенсера на pending-приглашение
func (s *CampaignServiceImpl) Respond(ctx context.Context, db *gorm.DB, p auth.Principal, campaignID string, decision models.InvitationStatus) (*models.Invitation, error) {
	if !p.IsInfluencer() {
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

	if !auth.CanRespondToInvitation(p, campaign) {
		if existing := campaign.FindInvitation(p.UserID); existing != nil {
			return nil, apperrors.ErrAlreadyResponded.WithDetails(map[string]string{"status": string(existing.Status)})
		}
		return nil, apperrors.ErrInvitationNotFound
	}

	inv, err := workflow.Respond(campaign, p.UserID, decision, nowFunc())
	if err != nil {
		return nil, err
	}
	if err := s.campaignRepo.UpdateWithVersion(tx, campaign); err != nil {
		return nil, handleRepoError(err)
	}
	if err := s.campaignRepo.UpdateInvitation(tx, inv); err != nil {
		return nil, handleRepoError(err)
	}

	brand, err := s.userRepo.FindByID(tx, campaign.BrandID)
	if err != nil && !isUserNotFound(err) {
		return nil, apperrors.InternalError(err)
	}
	influencer, err := s.userRepo.FindByID(tx, p.UserID)
	if err != nil && !isUserNotFound(err) {
		return nil, apperrors.InternalError(err)
	}

	if err := commit(tx); err != nil {
		return nil, err
	}

	metrics.RecordInvitation(string(decision))
	logger.CtxInfo(ctx, "Invitation answered",
		"campaign_id", campaign.ID,
		"invitation_id", inv.ID,
		"decision", decision,
	)

	s.notifier.Notify(ctx, Notification{
		Recipient: brand,
		Event:     EventInvitationResponded,
		Subject:   "Invitation " + string(decision) + ": " + campaign.Title,
		Template:  email.TemplateInvitationResponded,
		Data: email.TemplateData{
			"InfluencerName": displayName(influencer),
			"CampaignTitle":  campaign.Title,
			"Decision":       string(decision),
		},
		Payload: map[string]any{
			"campaignId":   campaign.ID,
			"invitationId": inv.ID,
			"influencerId": p.UserID,
			"decision":     decision,
		},
	})

	result := *inv
	return &result, nil
}

// onlyOwnInvitation оставляет в кампании только приглашение этого пользователя
func onlyOwnInvitation(c *models.BrandCampaign, userID string) {
	own := make([]models.Invitation, 0, 1)
	if inv := c.FindInvitation(userID); inv != nil {
		own = append(own, *inv)
	}
	c.Invitations = own
}

func isUserNotFound(err error) bool {
	return errors.Is(err, repositories.ErrUserNotFound)
}
