package repositories

import (
	"errors"

	"collab_backend/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(db *gorm.DB, campaign *models.BrandCampaign) error
	// FindByID загружает кампанию вместе с приглашениями
	FindByID(db *gorm.DB, id string) (*models.BrandCampaign, error)
	FindWithFilter(db *gorm.DB, filter CampaignFilter) ([]models.BrandCampaign, int64, error)
	// UpdateWithVersion - CAS по полю version
	UpdateWithVersion(db *gorm.DB, campaign *models.BrandCampaign) error
	DeleteByBrand(db *gorm.DB, brandID string) error

	CreateInvitation(db *gorm.DB, inv *models.Invitation) error
	UpdateInvitation(db *gorm.DB, inv *models.Invitation) error
	FindInvitationByID(db *gorm.DB, id string) (*models.Invitation, error)
	FindInvitationsByInfluencer(db *gorm.DB, influencerID string) ([]models.Invitation, error)
	DeleteInvitationsByInfluencer(db *gorm.DB, influencerID string) error
}

type CampaignFilter struct {
	BrandID string
	// InvitedUserID - только кампании, куда приглашен этот инфлюенсер
	InvitedUserID string
	Status        models.CampaignStatus
	Page
}

type CampaignRepositoryImpl struct{}

func NewCampaignRepository() CampaignRepository {
	return &CampaignRepositoryImpl{}
}

func (r *CampaignRepositoryImpl) Create(db *gorm.DB, campaign *models.BrandCampaign) error {
	return db.Omit("Brand", "Invitations").Create(campaign).Error
}

func (r *CampaignRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.BrandCampaign, error) {
	var campaign models.BrandCampaign
	err := db.Preload("Invitations", func(db *gorm.DB) *gorm.DB {
		return db.Order("invited_at ASC")
	}).First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrCampaignNotFound)
	}
	return &campaign, nil
}

func (r *CampaignRepositoryImpl) FindWithFilter(db *gorm.DB, filter CampaignFilter) ([]models.BrandCampaign, int64, error) {
	query := db.Model(&models.BrandCampaign{})

	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InvitedUserID != "" {
		query = query.Where("id IN (?)",
			db.Model(&models.Invitation{}).Select("campaign_id").Where("influencer_id = ?", filter.InvitedUserID))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []models.BrandCampaign
	err := filter.Page.apply(query).
		Preload("Invitations").
		Preload("Brand").
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, total, err
}

func (r *CampaignRepositoryImpl) UpdateWithVersion(db *gorm.DB, campaign *models.BrandCampaign) error {
	return updateVersioned(db, campaign, &campaign.Version)
}

func (r *CampaignRepositoryImpl) DeleteByBrand(db *gorm.DB, brandID string) error {
	campaignIDs := db.Model(&models.BrandCampaign{}).Select("id").Where("brand_id = ?", brandID)
	if err := db.Where("campaign_id IN (?)", campaignIDs).Delete(&models.Invitation{}).Error; err != nil {
		return err
	}
	return db.Where("brand_id = ?", brandID).Delete(&models.BrandCampaign{}).Error
}

func (r *CampaignRepositoryImpl) CreateInvitation(db *gorm.DB, inv *models.Invitation) error {
	if err := db.Omit("Influencer").Create(inv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrInvitationExists
		}
		return err
	}
	return nil
}

func (r *CampaignRepositoryImpl) UpdateInvitation(db *gorm.DB, inv *models.Invitation) error {
	res := db.Model(inv).
		Select("status", "responded_at", "agreed_price", "updated_at").
		Updates(inv)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

func (r *CampaignRepositoryImpl) FindInvitationByID(db *gorm.DB, id string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := db.First(&inv, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrInvitationNotFound)
	}
	return &inv, nil
}

func (r *CampaignRepositoryImpl) FindInvitationsByInfluencer(db *gorm.DB, influencerID string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := db.Where("influencer_id = ?", influencerID).
		Order("invited_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (r *CampaignRepositoryImpl) DeleteInvitationsByInfluencer(db *gorm.DB, influencerID string) error {
	return db.Where("influencer_id = ?", influencerID).Delete(&models.Invitation{}).Error
}
