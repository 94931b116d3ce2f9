package repositories

import (
	"collab_backend/internal/models"

	"gorm.io/gorm"
)

type PlatformCounts struct {
	UsersByRole         map[string]int64
	ActiveUsers         int64
	CampaignsByStatus   map[string]int64
	InvitationsByStatus map[string]int64
	DraftsByStatus      map[string]int64
}

type StatsRepository interface {
	PlatformCounts(db *gorm.DB) (*PlatformCounts, error)
}

type StatsRepositoryImpl struct{}

func NewStatsRepository() StatsRepository {
	return &StatsRepositoryImpl{}
}

func (r *StatsRepositoryImpl) PlatformCounts(db *gorm.DB) (*PlatformCounts, error) {
	var (
		out PlatformCounts
		err error
	)

	if out.UsersByRole, err = countBy(db, &models.User{}, "role"); err != nil {
		return nil, err
	}
	if err = db.Model(&models.User{}).Where("is_active = ?", true).Count(&out.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if out.CampaignsByStatus, err = countBy(db, &models.BrandCampaign{}, "status"); err != nil {
		return nil, err
	}
	if out.InvitationsByStatus, err = countBy(db, &models.Invitation{}, "status"); err != nil {
		return nil, err
	}
	if out.DraftsByStatus, err = countBy(db, &models.Draft{}, "status"); err != nil {
		return nil, err
	}
	return &out, nil
}

func countBy(db *gorm.DB, model interface{}, column string) (map[string]int64, error) {
	var rows []struct {
		GroupKey string
		Total    int64
	}
	err := db.Model(model).
		Select(column + " AS group_key, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}
