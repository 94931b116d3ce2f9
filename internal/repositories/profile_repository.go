package repositories

import (
	"errors"
	"strings"

	"collab_backend/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.InfluencerProfile) error
	FindByUserID(db *gorm.DB, userID string) (*models.InfluencerProfile, error)
	FindBySlug(db *gorm.DB, slug string) (*models.InfluencerProfile, error)
	Save(db *gorm.DB, profile *models.InfluencerProfile) error
	SlugTaken(db *gorm.DB, slug, exceptProfileID string) (bool, error)
	Search(db *gorm.DB, filter ProfileFilter) ([]models.InfluencerProfile, error)
	DeleteByUserID(db *gorm.DB, userID string) error
}

// ProfileFilter - фильтры дискавери, которые выполняются в SQL.
// Фильтр по цене применяется в сервисе: цена вычисляется, а не хранится.
type ProfileFilter struct {
	Category      string
	Location      string
	MinFollowers  int64
	MaxFollowers  int64
	MinEngagement float64
	MaxEngagement float64
	Search        string
	UserIDs       []string
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.InfluencerProfile) error {
	if err := db.Omit("User").Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	err := db.Preload("User").First(&profile, "slug = ?", strings.ToLower(slug)).Error
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Save(db *gorm.DB, profile *models.InfluencerProfile) error {
	if err := db.Omit("User").Save(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *ProfileRepositoryImpl) SlugTaken(db *gorm.DB, slug, exceptProfileID string) (bool, error) {
	var count int64
	query := db.Model(&models.InfluencerProfile{}).Where("slug = ?", slug)
	if exceptProfileID != "" {
		query = query.Where("id <> ?", exceptProfileID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Search возвращает активные заполненные профили активных пользователей
func (r *ProfileRepositoryImpl) Search(db *gorm.DB, filter ProfileFilter) ([]models.InfluencerProfile, error) {
	query := db.Model(&models.InfluencerProfile{}).
		Joins("JOIN users ON users.id = influencer_profiles.user_id").
		Where("influencer_profiles.is_active = ? AND influencer_profiles.profile_completed = ?", true, true).
		Where("users.is_active = ?", true)

	if filter.Category != "" {
		query = query.Where("LOWER(influencer_profiles.category) = ?", strings.ToLower(filter.Category))
	}
	if filter.Location != "" {
		query = query.Where("LOWER(influencer_profiles.location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.MinFollowers > 0 {
		query = query.Where("influencer_profiles.followers >= ?", filter.MinFollowers)
	}
	if filter.MaxFollowers > 0 {
		query = query.Where("influencer_profiles.followers <= ?", filter.MaxFollowers)
	}
	if filter.MinEngagement > 0 {
		query = query.Where("influencer_profiles.engagement_rate >= ?", filter.MinEngagement)
	}
	if filter.MaxEngagement > 0 {
		query = query.Where("influencer_profiles.engagement_rate <= ?", filter.MaxEngagement)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(influencer_profiles.instagram_username) LIKE ? OR LOWER(users.name) LIKE ?", like, like)
	}
	if filter.UserIDs != nil {
		query = query.Where("influencer_profiles.user_id IN ?", filter.UserIDs)
	}

	var profiles []models.InfluencerProfile
	err := query.Preload("User").
		Order("influencer_profiles.followers DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.InfluencerProfile{}).Error
}
