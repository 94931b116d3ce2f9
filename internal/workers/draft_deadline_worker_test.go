package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"collab_backend/internal/models"
	"collab_backend/internal/services"
	"collab_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recordingNotifier struct {
	mu    sync.Mutex
	notes []services.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n services.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func createDraft(t *testing.T, db *gorm.DB, campaign *models.BrandCampaign, influencerID string, status models.DraftStatus, deadlines models.DraftDeadlines) *models.Draft {
	t.Helper()
	inv := &models.Invitation{
		CampaignID:   campaign.ID,
		InfluencerID: influencerID,
		Status:       models.InvitationStatusAccepted,
		InvitedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Omit(clause.Associations).Create(inv).Error)

	d := &models.Draft{
		CampaignID:   campaign.ID,
		InvitationID: inv.ID,
		InfluencerID: influencerID,
		BrandID:      campaign.BrandID,
		Status:       status,
		Deadlines:    deadlines,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(d).Error)
	return d
}

func at(t time.Time) *time.Time { return &t }

func TestCheckDeadlines(t *testing.T) {
	db := testutil.NewTestDB(t)
	brand := testutil.CreateBrand(t, db, "brand@acme.io")
	campaign := testutil.CreateCampaign(t, db, brand.ID)

	base := time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)
	from, to := base, base.Add(time.Hour)
	inWindow := at(base.Add(30 * time.Minute))
	beforeWindow := at(base.Add(-time.Hour))

	late := testutil.CreateInfluencer(t, db, "late", 10000, 2)
	review := testutil.CreateInfluencer(t, db, "review", 10000, 2)
	earlier := testutil.CreateInfluencer(t, db, "earlier", 10000, 2)
	done := testutil.CreateInfluencer(t, db, "done", 10000, 2)

	lateDraft := createDraft(t, db, campaign, late.ID, models.DraftStatusDraft,
		models.DraftDeadlines{DraftSubmission: inWindow})
	createDraft(t, db, campaign, review.ID, models.DraftStatusUnderReview,
		models.DraftDeadlines{DraftSubmission: beforeWindow, FinalApproval: inWindow})
	// уже просрочен на прошлом проходе
	createDraft(t, db, campaign, earlier.ID, models.DraftStatusDraft,
		models.DraftDeadlines{DraftSubmission: beforeWindow})
	// терминальный статус не уведомляется
	createDraft(t, db, campaign, done.ID, models.DraftStatusPublished,
		models.DraftDeadlines{Publication: inWindow})

	notifier := &recordingNotifier{}
	w := NewDraftDeadlineWorker(db, notifier, time.Minute)

	sent, err := w.CheckDeadlines(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	recipients := map[string]services.Notification{}
	for _, n := range notifier.notes {
		recipients[n.Recipient.ID] = n
		assert.Equal(t, services.EventDraftOverdue, n.Event)
		assert.Equal(t, campaign.Title, n.Data["CampaignTitle"])
	}
	require.Contains(t, recipients, late.ID)
	assert.Equal(t, "draft submission", recipients[late.ID].Data["Deadline"])
	require.Contains(t, recipients, brand.ID)
	assert.Equal(t, "final approval", recipients[brand.ID].Data["Deadline"])

	var reloaded models.Draft
	require.NoError(t, db.First(&reloaded, "id = ?", lateDraft.ID).Error)
	assert.Equal(t, models.DraftStatusDraft, reloaded.Status)

	// следующее окно: ничего нового
	sent, err = w.CheckDeadlines(context.Background(), to, to.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestWorkerStopsOnCancel(t *testing.T) {
	db := testutil.NewTestDB(t)
	w := NewDraftDeadlineWorker(db, &recordingNotifier{}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.run(ctx)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
