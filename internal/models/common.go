package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel - id генерируется в приложении, чтобы одинаково работать на postgres и sqlite
type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels - порядок важен для AutoMigrate (внешние ключи)
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&InfluencerProfile{},
		&BrandCampaign{},
		&Invitation{},
		&Draft{},
	}
}
