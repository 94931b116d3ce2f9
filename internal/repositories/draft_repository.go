package repositories

import (
	"time"

	"collab_backend/internal/models"

	"gorm.io/gorm"
)

type DraftRepository interface {
	Create(db *gorm.DB, draft *models.Draft) error
	FindByID(db *gorm.DB, id string) (*models.Draft, error)
	FindByInvitation(db *gorm.DB, invitationID string) ([]models.Draft, error)
	UpdateWithVersion(db *gorm.DB, draft *models.Draft) error
	DeleteByUser(db *gorm.DB, userID string) error
	FindDeadlineCrossed(db *gorm.DB, from, to time.Time) ([]models.Draft, error)
}

type DraftRepositoryImpl struct{}

func NewDraftRepository() DraftRepository {
	return &DraftRepositoryImpl{}
}

func (r *DraftRepositoryImpl) Create(db *gorm.DB, draft *models.Draft) error {
	return db.Omit("Campaign").Create(draft).Error
}

func (r *DraftRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Draft, error) {
	var draft models.Draft
	if err := db.First(&draft, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrDraftNotFound)
	}
	return &draft, nil
}

func (r *DraftRepositoryImpl) FindByInvitation(db *gorm.DB, invitationID string) ([]models.Draft, error) {
	var drafts []models.Draft
	err := db.Where("invitation_id = ?", invitationID).
		Order("created_at ASC").
		Find(&drafts).Error
	return drafts, err
}

func (r *DraftRepositoryImpl) UpdateWithVersion(db *gorm.DB, draft *models.Draft) error {
	return updateVersioned(db, draft, &draft.Version)
}

// DeleteByUser удаляет черновики, где пользователь - бренд или инфлюенсер
func (r *DraftRepositoryImpl) DeleteByUser(db *gorm.DB, userID string) error {
	return db.Where("brand_id = ? OR influencer_id = ?", userID, userID).Delete(&models.Draft{}).Error
}

// FindDeadlineCrossed - черновики, чей текущий дедлайн пришелся на (from, to].
// Какой дедлайн текущий, зависит от статуса (см. workflow.IsOverdue).
func (r *DraftRepositoryImpl) FindDeadlineCrossed(db *gorm.DB, from, to time.Time) ([]models.Draft, error) {
	var drafts []models.Draft
	err := db.Preload("Campaign").
		Where("(status IN ? AND deadline_draft_submission > ? AND deadline_draft_submission <= ?)",
			[]models.DraftStatus{models.DraftStatusDraft, models.DraftStatusRevisionRequested}, from, to).
		Or("(status IN ? AND deadline_final_approval > ? AND deadline_final_approval <= ?)",
			[]models.DraftStatus{models.DraftStatusSubmitted, models.DraftStatusUnderReview}, from, to).
		Or("(status = ? AND deadline_publication > ? AND deadline_publication <= ?)",
			models.DraftStatusApproved, from, to).
		Order("created_at ASC").
		Find(&drafts).Error
	return drafts, err
}
