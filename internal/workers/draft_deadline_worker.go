package workers

import (
	"context"
	"time"

	"collab_backend/internal/email"
	"collab_backend/internal/logger"
	"collab_backend/internal/models"
	"collab_backend/internal/repositories"
	"collab_backend/internal/services"

	"gorm.io/gorm"
)

// DraftDeadlineWorker раз в interval уведомляет о черновиках,
// у которых с прошлого прохода истек текущий дедлайн.
// Статус черновика не меняется: просрочка только вычисляется.
type DraftDeadlineWorker struct {
	db       *gorm.DB
	drafts   repositories.DraftRepository
	users    repositories.UserRepository
	notifier services.Notifier
	interval time.Duration
	now      func() time.Time
}

func NewDraftDeadlineWorker(db *gorm.DB, notifier services.Notifier, interval time.Duration) *DraftDeadlineWorker {
	return &DraftDeadlineWorker{
		db:       db,
		drafts:   repositories.NewDraftRepository(),
		users:    repositories.NewUserRepository(),
		notifier: notifier,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start запускает фоновую проверку до отмены ctx
func (w *DraftDeadlineWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *DraftDeadlineWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	last := w.now()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Draft deadline worker stopped")
			return
		case <-ticker.C:
			now := w.now()
			if _, err := w.CheckDeadlines(ctx, last, now); err != nil {
				logger.Error("Error checking draft deadlines", "error", err)
				continue
			}
			last = now
		}
	}
}

// CheckDeadlines уведомляет по каждому черновику, чей дедлайн попал в (from, to].
// Возвращает число отправленных уведомлений.
func (w *DraftDeadlineWorker) CheckDeadlines(ctx context.Context, from, to time.Time) (int, error) {
	drafts, err := w.drafts.FindDeadlineCrossed(w.db.WithContext(ctx), from, to)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range drafts {
		d := &drafts[i]
		recipientID, deadline := responsibleParty(d)

		recipient, err := w.users.FindByID(w.db.WithContext(ctx), recipientID)
		if err != nil {
			logger.Warn("Overdue draft recipient not found", "draft_id", d.ID, "user_id", recipientID, "error", err)
			continue
		}

		title := ""
		if d.Campaign != nil {
			title = d.Campaign.Title
		}
		w.notifier.Notify(ctx, services.Notification{
			Recipient: recipient,
			Event:     services.EventDraftOverdue,
			Subject:   "Deadline missed: " + title,
			Template:  email.TemplateDraftOverdue,
			Data: email.TemplateData{
				"CampaignTitle": title,
				"Deadline":      deadline,
				"Status":        string(d.Status),
			},
			Payload: map[string]any{
				"draftId":    d.ID,
				"campaignId": d.CampaignID,
				"status":     d.Status,
				"deadline":   deadline,
			},
		})
		sent++
	}

	if sent > 0 {
		logger.Info("Overdue draft notifications sent", "count", sent)
	}
	return sent, nil
}

// responsibleParty: пока черновик у бренда на ревью - бренд, иначе инфлюенсер
func responsibleParty(d *models.Draft) (userID, deadline string) {
	switch d.Status {
	case models.DraftStatusSubmitted, models.DraftStatusUnderReview:
		return d.BrandID, "final approval"
	case models.DraftStatusApproved:
		return d.InfluencerID, "publication"
	default:
		return d.InfluencerID, "draft submission"
	}
}
