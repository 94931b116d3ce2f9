package services

import (
	"errors"
	"time"

	"collab_backend/internal/algorithms"
	"collab_backend/internal/config"
	"collab_backend/internal/models"
	"collab_backend/internal/repositories"
	"collab_backend/internal/services/dto"
	"collab_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// nowFunc подменяется в тестах
var nowFunc = func() time.Time { return time.Now().UTC() }

func beginTx(db *gorm.DB) (*gorm.DB, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	return tx, nil
}

func commit(tx *gorm.DB) error {
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// handleRepoError переводит сентинелы репозиториев в AppError.
// AppError пропускается как есть.
func handleRepoError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.NewNotFoundError("user", "User not found")
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.NewNotFoundError("profile", "Influencer profile not found")
	case errors.Is(err, repositories.ErrCampaignNotFound):
		return apperrors.NewNotFoundError("campaign", "Campaign not found")
	case errors.Is(err, repositories.ErrInvitationNotFound):
		return apperrors.ErrInvitationNotFound
	case errors.Is(err, repositories.ErrDraftNotFound):
		return apperrors.NewNotFoundError("draft", "Draft not found")
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrSlugTaken):
		return apperrors.NewConflictError("profile", "Slug is already taken")
	case errors.Is(err, repositories.ErrInvitationExists):
		return apperrors.ErrDuplicateInvitation
	case errors.Is(err, repositories.ErrVersionConflict):
		return apperrors.ErrConcurrentModification
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrAlreadyExists(err)
	default:
		return apperrors.InternalError(err)
	}
}

// Pricing - параметры расчета цены из конфига
type Pricing struct {
	BaseRate float64
	Currency string
}

func NewPricing(cfg config.PricingConfig) Pricing {
	p := Pricing{BaseRate: cfg.BaseRate, Currency: cfg.Currency}
	if p.BaseRate <= 0 {
		p.BaseRate = algorithms.DefaultBaseRate
	}
	if p.Currency == "" {
		p.Currency = algorithms.Currency
	}
	return p
}

// PriceOf - цена не хранится, считается на каждом чтении.
// Некорректные счетчики в базе дают цену 0.
func (p Pricing) PriceOf(profile *models.InfluencerProfile) int64 {
	price, err := algorithms.EstimatedPriceWithBase(float64(profile.Followers), profile.EngagementRate, p.BaseRate)
	if err != nil {
		return 0
	}
	return price
}

func (p Pricing) ProfileResponse(profile *models.InfluencerProfile) *dto.ProfileResponse {
	if profile == nil {
		return nil
	}
	return &dto.ProfileResponse{
		InfluencerProfile: *profile,
		EstimatedPrice:    p.PriceOf(profile),
		Currency:          p.Currency,
	}
}

func pageOf(p dto.Pagination) repositories.Page {
	return repositories.Page{Page: p.Page, PageSize: p.PageSize}
}
