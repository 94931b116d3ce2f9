package testutil

import (
	"sync"
	"testing"
	"time"

	"collab_backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password - пароль всех фикстур
const Password = "password123"

var (
	hashOnce sync.Once
	hash     string
)

// PasswordHash - bcrypt с минимальной стоимостью, считается один раз на пакет тестов
func PasswordHash() string {
	hashOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		hash = string(b)
	})
	return hash
}

func CreateBrand(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := models.NewBrandUser("Brand "+email, models.BrandAccount{
		Email:        email,
		PasswordHash: PasswordHash(),
		CompanyName:  "Acme",
	})
	mustCreate(t, db, u)
	return u
}

func CreateAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := models.NewAdminUser("Admin", models.AdminAccount{Email: email, PasswordHash: PasswordHash()})
	mustCreate(t, db, u)
	return u
}

// CreateInfluencer создает пользователя и заполненный активный профиль
func CreateInfluencer(t *testing.T, db *gorm.DB, username string, followers int64, engagement float64) *models.User {
	t.Helper()
	u := models.NewInfluencerUser(username, models.InfluencerAccount{InstagramUsername: username})
	u.PasswordHash = PasswordHash()
	u.ProfileCompleted = true
	mustCreate(t, db, u)

	p := &models.InfluencerProfile{
		UserID:            u.ID,
		InstagramUsername: username,
		Followers:         followers,
		EngagementRate:    engagement,
		Category:          "fashion",
		Location:          "Mumbai",
		Slug:              username,
		IsActive:          true,
		ProfileCompleted:  true,
	}
	mustCreate(t, db, p)
	u.InfluencerProfile = p
	return u
}

// CreateCampaign - активная кампания бренда с бюджетом 10000-30000
func CreateCampaign(t *testing.T, db *gorm.DB, brandID string) *models.BrandCampaign {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	c := &models.BrandCampaign{
		BrandID:             brandID,
		Title:               "Summer Launch",
		Categories:          []string{"fashion"},
		BudgetMin:           10000,
		BudgetMax:           30000,
		ApplicationDeadline: now.AddDate(0, 0, 7),
		ContentDeadline:     now.AddDate(0, 0, 14),
		PublishDate:         now.AddDate(0, 0, 21),
		Status:              models.CampaignStatusActive,
	}
	mustCreate(t, db, c)
	return c
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Omit("InfluencerProfile", "User", "Brand", "Invitations", "Campaign", "Influencer").Create(v).Error; err != nil {
		t.Fatalf("create fixture %T: %v", v, err)
	}
}
