package repositories

import (
	"errors"
	"strings"
	"time"

	"collab_backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByInstagramUsername(db *gorm.DB, username string) (*models.User, error)
	FindByInstagramUserID(db *gorm.DB, igUserID string) (*models.User, error)
	Save(db *gorm.DB, user *models.User) error
	UpdateLastLogin(db *gorm.DB, userID string, at time.Time) error
	UpdateStatus(db *gorm.DB, userID string, isActive bool) error
	SetProfileCompleted(db *gorm.DB, userID string) error
	Delete(db *gorm.DB, userID string) error
	FindWithFilter(db *gorm.DB, filter UserFilter) ([]models.User, int64, error)
	ExistsByRole(db *gorm.DB, role models.UserRole) (bool, error)
}

type UserFilter struct {
	Role     models.UserRole
	IsActive *bool
	Search   string
	Page
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("InfluencerProfile").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByInstagramUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "instagram_username = ?", strings.ToLower(strings.TrimSpace(username))).Error
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByInstagramUserID(db *gorm.DB, igUserID string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "instagram_user_id = ?", igUserID).Error
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

// Save - полное обновление с проверкой обязательных полей роли (хук BeforeSave)
func (r *UserRepositoryImpl) Save(db *gorm.DB, user *models.User) error {
	if err := db.Omit("InfluencerProfile").Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// Частичные обновления идут в обход хуков: обязательные поля роли они не трогают

func (r *UserRepositoryImpl) UpdateLastLogin(db *gorm.DB, userID string, at time.Time) error {
	return r.updateColumns(db, userID, map[string]interface{}{"last_login": at})
}

func (r *UserRepositoryImpl) UpdateStatus(db *gorm.DB, userID string, isActive bool) error {
	return r.updateColumns(db, userID, map[string]interface{}{"is_active": isActive})
}

func (r *UserRepositoryImpl) SetProfileCompleted(db *gorm.DB, userID string) error {
	return r.updateColumns(db, userID, map[string]interface{}{"profile_completed": true})
}

func (r *UserRepositoryImpl) updateColumns(db *gorm.DB, userID string, values map[string]interface{}) error {
	values["updated_at"] = time.Now()
	res := db.Session(&gorm.Session{SkipHooks: true}).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumns(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, userID string) error {
	res := db.Delete(&models.User{}, "id = ?", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindWithFilter(db *gorm.DB, filter UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(instagram_username) LIKE ? OR LOWER(company_name) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := filter.Page.apply(query).Order("created_at DESC").Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) ExistsByRole(db *gorm.DB, role models.UserRole) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Limit(1).Count(&count).Error
	return count > 0, err
}
