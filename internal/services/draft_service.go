package services

import (
	"context"
	"errors"
	"strconv"
	"time"

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

// finalApprovalGrace - срок согласования по умолчанию после дедлайна контента
const finalApprovalGrace = 3 * 24 * time.Hour

// DraftService - коллаборации (кампания + принятое приглашение) и черновики в них
type DraftService interface {
	GetCollaboration(ctx context.Context, db *gorm.DB, p auth.Principal, invitationID string) (*dto.CollaborationResponse, error)
	ListDrafts(ctx context.Context, db *gorm.DB, p auth.Principal, invitationID string) ([]*dto.DraftResponse, error)
	CreateDraft(ctx context.Context, db *gorm.DB, p auth.Principal, invitationID string, req *dto.CreateDraftRequest) (*dto.DraftResponse, error)

	GetDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string) (*dto.DraftResponse, error)
	UpdateDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error)
	SubmitDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.SubmitDraftRequest) (*dto.DraftResponse, error)
	ReviewDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.ReviewDraftRequest) (*dto.DraftResponse, error)
	AddFeedback(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.FeedbackRequest) (*dto.DraftResponse, error)
	PublishDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.PublishDraftRequest) (*dto.DraftResponse, error)
}

type DraftServiceImpl struct {
	draftRepo    repositories.DraftRepository
	campaignRepo repositories.CampaignRepository
	userRepo     repositories.UserRepository
	notifier     Notifier
}

func NewDraftService(
	draftRepo repositories.DraftRepository,
	campaignRepo repositories.CampaignRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
) DraftService {
	return &DraftServiceImpl{
		draftRepo:    draftRepo,
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

// collaboration - загруженная пара кампания + принятое приглашение
type collaboration struct {
	campaign   *models.BrandCampaign
	invitation *models.Invitation
}

func (s *DraftServiceImpl) loadCollaboration(db *gorm.DB, invitationID string) (*collaboration, error) {
	inv, err := s.campaignRepo.FindInvitationByID(db, invitationID)
	if err != nil {
		return nil, collaborationNotFound(err)
	}
	if inv.Status != models.InvitationStatusAccepted {
		return nil, apperrors.NewNotFoundError("collaboration", "Collaboration not found")
	}
	campaign, err := s.campaignRepo.FindByID(db, inv.CampaignID)
	if err != nil {
		return nil, collaborationNotFound(err)
	}
	return &collaboration{campaign: campaign, invitation: inv}, nil
}

// canAccessCollaboration: бренд-владелец, админ или приглашенный инфлюенсер с принятым приглашением
func canAccessCollaboration(p auth.Principal, c *collaboration) bool {
	if auth.CanManageCampaign(p, c.campaign) {
		return true
	}
	return c.invitation.InfluencerID == p.UserID && auth.CanAccessDraftAsInfluencer(p, c.campaign)
}

func (s *DraftServiceImpl) GetCollaboration(ctx context.Context, db *gorm.DB, p auth.Principal, invitationID string) (*dto.CollaborationResponse, error) {
	collab, err := s.loadCollaboration(db, invitationID)
	if err != nil {
		return nil, err
	}
	if !canAccessCollaboration(p, collab) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	drafts, err := s.draftsOf(db, collab.invitation.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CollaborationResponse{
		Campaign:   dto.NewCampaignSummary(collab.campaign),
		Invitation: *collab.invitation,
		Drafts:     drafts,
	}
	if influencer, err := s.userRepo.FindByID(db, collab.invitation.InfluencerID); err == nil {
		resp.Influencer = influencer
	} else if !isUserNotFound(err) {
		return nil, apperrors.InternalError(err)
	}
	return resp, nil
}

func (s *DraftServiceImpl) ListDrafts(ctx context.Context, db *gorm.DB, p auth.Principal, invitationID string) ([]*dto.DraftResponse, error) {
	collab, err := s.loadCollaboration(db, invitationID)
	if err != nil {
		return nil, err
	}
	if !canAccessCollaboration(p, collab) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.draftsOf(db, collab.invitation.ID)
}

func (s *DraftServiceImpl) draftsOf(db *gorm.DB, invitationID string) ([]*dto.DraftResponse, error) {
	drafts, err := s.draftRepo.FindByInvitation(db, invitationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	now := nowFunc()
	result := make([]*dto.DraftResponse, 0, len(drafts))
	for i := range drafts {
		result = append(result, dto.NewDraftResponse(&drafts[i], now))
	}
	return result, nil
}

// CreateDraft - только инфлюенсер с принятым приглашением. Дедлайны по умолчанию
// берутся из таймлайна кампании и могут быть переопределены.
func (s *DraftServiceImpl) CreateDraft(ctx context.Context, db *gorm.DB, p auth.Principal, invitationID string, req *dto.CreateDraftRequest) (*dto.DraftResponse, error) {
	collab, err := s.loadCollaboration(db, invitationID)
	if err != nil {
		return nil, err
	}
	if !p.IsInfluencer() || collab.invitation.InfluencerID != p.UserID ||
		!auth.CanAccessDraftAsInfluencer(p, collab.campaign) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	campaign := collab.campaign
	submission := campaign.ContentDeadline
	approval := campaign.ContentDeadline.Add(finalApprovalGrace)
	publication := campaign.PublishDate
	deadlines := models.DraftDeadlines{
		DraftSubmission: &submission,
		FinalApproval:   &approval,
		Publication:     &publication,
	}
	if d := req.Deadlines; d != nil {
		if d.DraftSubmission != nil {
			deadlines.DraftSubmission = d.DraftSubmission
		}
		if d.FinalApproval != nil {
			deadlines.FinalApproval = d.FinalApproval
		}
		if d.Publication != nil {
			deadlines.Publication = d.Publication
		}
	}

	draft := &models.Draft{
		CampaignID:   campaign.ID,
		InvitationID: collab.invitation.ID,
		InfluencerID: p.UserID,
		BrandID:      campaign.BrandID,
		Content:      datatypes.NewJSONType(req.Content.ToModel()),
		Status:       models.DraftStatusDraft,
		Feedback:     datatypes.JSONSlice[models.Feedback]{},
		Revisions:    datatypes.JSONSlice[models.Revision]{},
		Deadlines:    deadlines,
		Version:      1,
	}
	if err := s.draftRepo.Create(db, draft); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Draft created", "draft_id", draft.ID, "campaign_id", campaign.ID, "influencer_id", p.UserID)
	return dto.NewDraftResponse(draft, nowFunc()), nil
}

func (s *DraftServiceImpl) GetDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string) (*dto.DraftResponse, error) {
	draft, campaign, err := s.loadDraft(db, draftID)
	if err != nil {
		return nil, err
	}
	if !canReadDraft(p, draft, campaign) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return dto.NewDraftResponse(draft, nowFunc()), nil
}

// UpdateDraft - правка контента только в статусе draft
func (s *DraftServiceImpl) UpdateDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error) {
	draft, _, err := s.mutateDraft(db, p, draftID, canWriteDraft, func(d *models.Draft, _ time.Time) error {
		return workflow.UpdateContent(d, req.Content.ToModel())
	})
	if err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "Draft content updated", "draft_id", draft.ID)
	return dto.NewDraftResponse(draft, nowFunc()), nil
}

// SubmitDraft: из draft - первая отправка (контент можно обновить тем же запросом),
// из revision_requested - повторная отправка с обязательным новым контентом.
func (s *DraftServiceImpl) SubmitDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.SubmitDraftRequest) (*dto.DraftResponse, error) {
	action := "submit"
	draft, campaign, err := s.mutateDraft(db, p, draftID, canWriteDraft, func(d *models.Draft, now time.Time) error {
		if d.Status == models.DraftStatusRevisionRequested {
			if req.Content == nil {
				return apperrors.ValidationError(map[string]string{"content": "Content is required to resubmit a draft"})
			}
			action = "resubmit"
			return workflow.Resubmit(d, req.Content.ToModel(), now)
		}
		if req.Content != nil && d.Status == models.DraftStatusDraft {
			if err := workflow.UpdateContent(d, req.Content.ToModel()); err != nil {
				return err
			}
		}
		return workflow.Submit(d, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDraftTransition(action)
	logger.CtxInfo(ctx, "Draft submitted", "draft_id", draft.ID, "version", draft.CurrentVersion(), "action", action)

	influencer := s.findUser(ctx, db, draft.InfluencerID)
	s.notifier.Notify(ctx, Notification{
		Recipient: s.findUser(ctx, db, draft.BrandID),
		Event:     EventDraftSubmitted,
		Subject:   "Draft ready for review: " + campaign.Title,
		Template:  email.TemplateDraftSubmitted,
		Data: email.TemplateData{
			"InfluencerName": displayName(influencer),
			"CampaignTitle":  campaign.Title,
			"Version":        strconv.Itoa(draft.CurrentVersion()),
		},
		Payload: draftPayload(draft),
	})

	return dto.NewDraftResponse(draft, nowFunc()), nil
}

// ReviewDraft - решение бренда-владельца или админа
func (s *DraftServiceImpl) ReviewDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.ReviewDraftRequest) (*dto.DraftResponse, error) {
	actor := workflow.Actor{UserID: p.UserID, Role: p.Role}
	draft, campaign, err := s.mutateDraft(db, p, draftID, canReview, func(d *models.Draft, now time.Time) error {
		return workflow.Review(d, req.Action, actor, req.Message, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDraftTransition(string(req.Action))
	logger.CtxInfo(ctx, "Draft reviewed", "draft_id", draft.ID, "action", req.Action, "status", draft.Status)

	s.notifier.Notify(ctx, Notification{
		Recipient: s.findUser(ctx, db, draft.InfluencerID),
		Event:     EventDraftReviewed,
		Subject:   "Your draft was reviewed: " + campaign.Title,
		Template:  email.TemplateDraftReviewed,
		Data: email.TemplateData{
			"CampaignTitle": campaign.Title,
			"Status":        string(draft.Status),
			"Message":       req.Message,
		},
		Payload: draftPayload(draft),
	})

	return dto.NewDraftResponse(draft, nowFunc()), nil
}

// AddFeedback - комментарий любой из сторон; уведомляется другая сторона
func (s *DraftServiceImpl) AddFeedback(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.FeedbackRequest) (*dto.DraftResponse, error) {
	actor := workflow.Actor{UserID: p.UserID, Role: p.Role}
	draft, campaign, err := s.mutateDraft(db, p, draftID, canReadDraft, func(d *models.Draft, now time.Time) error {
		return workflow.AddComment(d, actor, req.Message, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDraftTransition("comment")

	recipientID := draft.InfluencerID
	if p.UserID == draft.InfluencerID {
		recipientID = draft.BrandID
	}
	author := s.findUser(ctx, db, p.UserID)
	s.notifier.Notify(ctx, Notification{
		Recipient: s.findUser(ctx, db, recipientID),
		Event:     EventDraftComment,
		Subject:   "New comment: " + campaign.Title,
		Template:  email.TemplateDraftComment,
		Data: email.TemplateData{
			"AuthorName":    displayName(author),
			"CampaignTitle": campaign.Title,
			"Message":       req.Message,
		},
		Payload: draftPayload(draft),
	})

	return dto.NewDraftResponse(draft, nowFunc()), nil
}

func (s *DraftServiceImpl) PublishDraft(ctx context.Context, db *gorm.DB, p auth.Principal, draftID string, req *dto.PublishDraftRequest) (*dto.DraftResponse, error) {
	draft, campaign, err := s.mutateDraft(db, p, draftID, canWriteDraft, func(d *models.Draft, now time.Time) error {
		return workflow.Publish(d, req.PostURL, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDraftTransition("publish")
	logger.CtxInfo(ctx, "Draft published", "draft_id", draft.ID, "post_url", draft.PostURL)

	influencer := s.findUser(ctx, db, draft.InfluencerID)
	s.notifier.Notify(ctx, Notification{
		Recipient: s.findUser(ctx, db, draft.BrandID),
		Event:     EventDraftPublished,
		Subject:   "Content published: " + campaign.Title,
		Template:  email.TemplateDraftPublished,
		Data: email.TemplateData{
			"InfluencerName": displayName(influencer),
			"CampaignTitle":  campaign.Title,
			"PostURL":        draft.PostURL,
		},
		Payload: draftPayload(draft),
	})

	return dto.NewDraftResponse(draft, nowFunc()), nil
}

type draftAccess func(p auth.Principal, d *models.Draft, c *models.BrandCampaign) bool

// mutateDraft: загрузка, проверка доступа, переход и CAS по версии в одной транзакции
func (s *DraftServiceImpl) mutateDraft(
	db *gorm.DB,
	p auth.Principal,
	draftID string,
	allowed draftAccess,
	apply func(d *models.Draft, now time.Time) error,
) (*models.Draft, *models.BrandCampaign, error) {
	tx, err := beginTx(db)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	draft, campaign, err := s.loadDraft(tx, draftID)
	if err != nil {
		return nil, nil, err
	}
	if !allowed(p, draft, campaign) {
		return nil, nil, apperrors.ErrInsufficientPermissions
	}
	if err := apply(draft, nowFunc()); err != nil {
		return nil, nil, err
	}
	if err := s.draftRepo.UpdateWithVersion(tx, draft); err != nil {
		return nil, nil, handleRepoError(err)
	}
	if err := commit(tx); err != nil {
		return nil, nil, err
	}
	return draft, campaign, nil
}

func (s *DraftServiceImpl) loadDraft(db *gorm.DB, draftID string) (*models.Draft, *models.BrandCampaign, error) {
	draft, err := s.draftRepo.FindByID(db, draftID)
	if err != nil {
		return nil, nil, handleRepoError(err)
	}
	campaign, err := s.campaignRepo.FindByID(db, draft.CampaignID)
	if err != nil {
		return nil, nil, handleRepoError(err)
	}
	return draft, campaign, nil
}

// findUser - получатель уведомления; отсутствие пользователя не ошибка
func (s *DraftServiceImpl) findUser(ctx context.Context, db *gorm.DB, userID string) *models.User {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if !isUserNotFound(err) {
			logger.CtxWarn(ctx, "Failed to load notification recipient", "user_id", userID, "error", err)
		}
		return nil
	}
	return user
}

func canWriteDraft(p auth.Principal, d *models.Draft, c *models.BrandCampaign) bool {
	return p.IsInfluencer() && d.InfluencerID == p.UserID && auth.CanAccessDraftAsInfluencer(p, c)
}

func canReview(p auth.Principal, d *models.Draft, _ *models.BrandCampaign) bool {
	return auth.CanReviewDraft(p, d)
}

func canReadDraft(p auth.Principal, d *models.Draft, c *models.BrandCampaign) bool {
	return canReview(p, d, c) || canWriteDraft(p, d, c)
}

func collaborationNotFound(err error) error {
	if isNotFoundErr(err) {
		return apperrors.NewNotFoundError("collaboration", "Collaboration not found")
	}
	return apperrors.InternalError(err)
}

func isNotFoundErr(err error) bool {
	return errors.Is(err, repositories.ErrInvitationNotFound) || errors.Is(err, repositories.ErrCampaignNotFound)
}

func draftPayload(d *models.Draft) map[string]any {
	return map[string]any{
		"draftId":        d.ID,
		"campaignId":     d.CampaignID,
		"invitationId":   d.InvitationID,
		"status":         d.Status,
		"currentVersion": d.CurrentVersion(),
	}
}
