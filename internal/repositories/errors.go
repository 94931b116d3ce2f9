package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrProfileNotFound    = errors.New("influencer profile not found")
	ErrSlugTaken          = errors.New("slug already taken")
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExists   = errors.New("invitation already exists")
	ErrDraftNotFound      = errors.New("draft not found")

	// ErrVersionConflict - запись изменилась между чтением и записью
	ErrVersionConflict = errors.New("version conflict")
)

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// updateVersioned сохраняет все колонки записи, если version в БД совпадает с ожидаемой.
// version у записи увеличивается на 1; при конфликте откатывается обратно.
func updateVersioned(db *gorm.DB, record interface{}, version *int) error {
	expected := *version
	*version = expected + 1

	res := db.Model(record).
		Where("version = ?", expected).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(record)
	if res.Error != nil {
		*version = expected
		return res.Error
	}
	if res.RowsAffected == 0 {
		*version = expected
		return ErrVersionConflict
	}
	return nil
}

// Page - общая пагинация списков
type Page struct {
	Page     int
	PageSize int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.PageSize <= 0 {
		return db
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}
	return db.Offset((page - 1) * p.PageSize).Limit(p.PageSize)
}
