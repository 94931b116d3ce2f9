package models

import (
	"strings"
	"time"

	"collab_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// User - одна таблица для всех ролей. Набор обязательных полей зависит от роли,
// см. Account().
type User struct {
	BaseModel
	Role         UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	Name         string   `gorm:"not null" json:"name"`
	Email        *string  `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string   `json:"-"`

	// Brand
	CompanyName string `json:"companyName,omitempty"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`

	// Influencer
	InstagramUsername    *string `gorm:"uniqueIndex" json:"instagramUsername,omitempty"`
	InstagramUserID      *string `gorm:"uniqueIndex" json:"instagramUserId,omitempty"`
	InstagramAccessToken string  `json:"-"`

	IsActive         bool       `gorm:"not null" json:"isActive"`
	ProfileCompleted bool       `gorm:"not null" json:"profileCompleted"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`

	InfluencerProfile *InfluencerProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Account - роль-специфичное представление пользователя
type Account interface {
	Role() UserRole
	Validate() error
}

type BrandAccount struct {
	Email        string
	PasswordHash string
	CompanyName  string
	Website      string
	Industry     string
}

type InfluencerAccount struct {
	InstagramUsername string
	InstagramUserID   string
	Email             string
}

type AdminAccount struct {
	Email        string
	PasswordHash string
}

func (BrandAccount) Role() UserRole      { return UserRoleBrand }
func (InfluencerAccount) Role() UserRole { return UserRoleInfluencer }
func (AdminAccount) Role() UserRole      { return UserRoleAdmin }

func (a BrandAccount) Validate() error {
	missing := map[string]string{}
	if a.Email == "" {
		missing["email"] = "This field is required"
	}
	if a.PasswordHash == "" {
		missing["password"] = "This field is required"
	}
	if strings.TrimSpace(a.CompanyName) == "" {
		missing["companyName"] = "This field is required"
	}
	if len(missing) > 0 {
		return apperrors.ValidationError(missing)
	}
	return nil
}

func (a InfluencerAccount) Validate() error {
	if strings.TrimSpace(a.InstagramUsername) == "" {
		return apperrors.ValidationError(map[string]string{"instagramUsername": "This field is required"})
	}
	return nil
}

func (a AdminAccount) Validate() error {
	missing := map[string]string{}
	if a.Email == "" {
		missing["email"] = "This field is required"
	}
	if a.PasswordHash == "" {
		missing["password"] = "This field is required"
	}
	if len(missing) > 0 {
		return apperrors.ValidationError(missing)
	}
	return nil
}

// Account возвращает вариант по роли
func (u *User) Account() (Account, error) {
	switch u.Role {
	case UserRoleBrand:
		return BrandAccount{
			Email:        deref(u.Email),
			PasswordHash: u.PasswordHash,
			CompanyName:  u.CompanyName,
			Website:      u.Website,
			Industry:     u.Industry,
		}, nil
	case UserRoleInfluencer:
		return InfluencerAccount{
			InstagramUsername: deref(u.InstagramUsername),
			InstagramUserID:   deref(u.InstagramUserID),
			Email:             deref(u.Email),
		}, nil
	case UserRoleAdmin:
		return AdminAccount{
			Email:        deref(u.Email),
			PasswordHash: u.PasswordHash,
		}, nil
	default:
		return nil, apperrors.NewValidationError("Unknown user role: " + string(u.Role))
	}
}

// BeforeSave проверяет обязательные поля роли при Create и Save
func (u *User) BeforeSave(tx *gorm.DB) error {
	acc, err := u.Account()
	if err != nil {
		return err
	}
	return acc.Validate()
}

// NewBrandUser / NewInfluencerUser / NewAdminUser собирают User из варианта
func NewBrandUser(name string, acc BrandAccount) *User {
	return &User{
		Role:         UserRoleBrand,
		Name:         name,
		Email:        strPtr(strings.ToLower(acc.Email)),
		PasswordHash: acc.PasswordHash,
		CompanyName:  acc.CompanyName,
		Website:      acc.Website,
		Industry:     acc.Industry,
		IsActive:     true,
	}
}

func NewInfluencerUser(name string, acc InfluencerAccount) *User {
	u := &User{
		Role:              UserRoleInfluencer,
		Name:              name,
		InstagramUsername: strPtr(strings.ToLower(acc.InstagramUsername)),
		IsActive:          true,
	}
	if acc.Email != "" {
		u.Email = strPtr(strings.ToLower(acc.Email))
	}
	if acc.InstagramUserID != "" {
		u.InstagramUserID = strPtr(acc.InstagramUserID)
	}
	return u
}

func NewAdminUser(name string, acc AdminAccount) *User {
	return &User{
		Role:             UserRoleAdmin,
		Name:             name,
		Email:            strPtr(strings.ToLower(acc.Email)),
		PasswordHash:     acc.PasswordHash,
		IsActive:         true,
		ProfileCompleted: true,
	}
}

func (u *User) GetEmail() string             { return deref(u.Email) }
func (u *User) GetInstagramUsername() string { return deref(u.InstagramUsername) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
