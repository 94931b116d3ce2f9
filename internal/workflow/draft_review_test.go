package workflow

import (
	"testing"
	"time"

	"collab_backend/internal/models"
	"collab_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var brandActor = Actor{UserID: "brand-1", Role: models.UserRoleBrand}

func newDraft(caption string) *models.Draft {
	return &models.Draft{
		Status:  models.DraftStatusDraft,
		Content: datatypes.NewJSONType(models.DraftContent{Type: models.ContentTypeReel, Caption: caption}),
	}
}

func assertInvalidTransition(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidStatus), err.Error())
}

func TestDraft_RevisionCycle(t *testing.T) {
	d := newDraft("v1")

	require.NoError(t, Submit(d, testNow))
	assert.Equal(t, models.DraftStatusSubmitted, d.Status)
	require.NotNil(t, d.SubmittedAt)

	require.NoError(t, StartReview(d, testNow))
	require.NoError(t, RequestChanges(d, brandActor, "more product shots", testNow))
	assert.Equal(t, models.DraftStatusRevisionRequested, d.Status)
	require.Len(t, d.Feedback, 1)
	assert.Equal(t, models.FeedbackTypeRevision, d.Feedback[0].Type)
	assert.Equal(t, models.UserRoleBrand, d.Feedback[0].From)

	later := testNow.Add(time.Hour)
	require.NoError(t, Resubmit(d, models.DraftContent{Type: models.ContentTypeReel, Caption: "v2"}, later))
	assert.Equal(t, models.DraftStatusSubmitted, d.Status)
	require.Len(t, d.Revisions, 1)
	assert.Equal(t, 1, d.Revisions[0].Version)
	assert.Equal(t, "v1", d.Revisions[0].Content.Caption)
	assert.Equal(t, later, d.Revisions[0].ArchivedAt)
	assert.Equal(t, "v2", d.Content.Data().Caption)
	assert.Equal(t, 2, d.CurrentVersion())

	require.NoError(t, Approve(d, brandActor, "", later))
	assert.Equal(t, models.DraftStatusApproved, d.Status)
	require.NotNil(t, d.ApprovedBy)
	assert.Equal(t, "brand-1", *d.ApprovedBy)

	require.NoError(t, Publish(d, "https://instagram.com/p/abc", later))
	assert.Equal(t, models.DraftStatusPublished, d.Status)
	assert.Equal(t, "https://instagram.com/p/abc", d.PostURL)
	require.NotNil(t, d.PublishedAt)
}

func TestDraft_CurrentVersionAfterResubmissions(t *testing.T) {
	d := newDraft("v1")
	require.NoError(t, Submit(d, testNow))

	for n := 1; n <= 4; n++ {
		require.NoError(t, RequestChanges(d, brandActor, "again", testNow))
		require.NoError(t, Resubmit(d, models.DraftContent{Caption: "next"}, testNow))
		assert.Equal(t, n+1, d.CurrentVersion())
		assert.Equal(t, n, d.Revisions[n-1].Version)
	}
}

func TestDraft_ApproveDirectlyFromSubmitted(t *testing.T) {
	d := newDraft("v1")
	require.NoError(t, Submit(d, testNow))
	require.NoError(t, Approve(d, brandActor, "nice", testNow))
	assert.Equal(t, models.DraftStatusApproved, d.Status)
}

func TestDraft_InvalidTransitions(t *testing.T) {
	content := models.DraftContent{Caption: "x"}

	tests := []struct {
		name   string
		status models.DraftStatus
		apply  func(d *models.Draft) error
	}{
		{"submit twice", models.DraftStatusSubmitted, func(d *models.Draft) error { return Submit(d, testNow) }},
		{"review a draft", models.DraftStatusDraft, func(d *models.Draft) error { return StartReview(d, testNow) }},
		{"approve a draft", models.DraftStatusDraft, func(d *models.Draft) error { return Approve(d, brandActor, "", testNow) }},
		{"publish unapproved", models.DraftStatusUnderReview, func(d *models.Draft) error { return Publish(d, "u", testNow) }},
		{"resubmit without request", models.DraftStatusSubmitted, func(d *models.Draft) error { return Resubmit(d, content, testNow) }},
		{"edit after submit", models.DraftStatusSubmitted, func(d *models.Draft) error { return UpdateContent(d, content) }},
		{"approve rejected", models.DraftStatusRejected, func(d *models.Draft) error { return Approve(d, brandActor, "", testNow) }},
		{"resubmit rejected", models.DraftStatusRejected, func(d *models.Draft) error { return Resubmit(d, content, testNow) }},
		{"request changes on published", models.DraftStatusPublished, func(d *models.Draft) error {
			return RequestChanges(d, brandActor, "", testNow)
		}},
		{"comment on published", models.DraftStatusPublished, func(d *models.Draft) error {
			return AddComment(d, brandActor, "hi", testNow)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDraft("v1")
			d.Status = tt.status

			assertInvalidTransition(t, tt.apply(d))
			assert.Equal(t, tt.status, d.Status)
			assert.Empty(t, d.Revisions)
		})
	}
}

func TestDraft_RejectIsTerminal(t *testing.T) {
	d := newDraft("v1")
	require.NoError(t, Submit(d, testNow))
	require.NoError(t, Reject(d, brandActor, "off brand", testNow))
	assert.Equal(t, models.DraftStatusRejected, d.Status)
	assert.True(t, d.Status.IsTerminal())

	for _, a := range []ReviewAction{ActionStartReview, ActionApprove, ActionReject, ActionRequestChanges} {
		assertInvalidTransition(t, Review(d, a, brandActor, "", testNow))
	}
}

func TestReview_UnknownAction(t *testing.T) {
	d := newDraft("v1")
	require.NoError(t, Submit(d, testNow))

	err := Review(d, "escalate", brandActor, "", testNow)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
	assert.Equal(t, models.DraftStatusSubmitted, d.Status)
}

func TestAddComment(t *testing.T) {
	d := newDraft("v1")
	require.NoError(t, Submit(d, testNow))

	require.NoError(t, AddComment(d, brandActor, "  love the intro  ", testNow))
	assert.Equal(t, models.DraftStatusSubmitted, d.Status)
	require.Len(t, d.Feedback, 1)
	assert.Equal(t, "love the intro", d.Feedback[0].Message)
	assert.Equal(t, models.FeedbackTypeComment, d.Feedback[0].Type)

	err := AddComment(d, brandActor, "   ", testNow)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestUpdateContent(t *testing.T) {
	d := newDraft("v1")
	require.NoError(t, UpdateContent(d, models.DraftContent{Caption: "v1b"}))
	assert.Equal(t, "v1b", d.Content.Data().Caption)
	assert.Empty(t, d.Revisions)
}

func TestIsOverdue(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	tests := []struct {
		name      string
		status    models.DraftStatus
		deadlines models.DraftDeadlines
		want      bool
	}{
		{"draft past submission", models.DraftStatusDraft, models.DraftDeadlines{DraftSubmission: &past}, true},
		{"draft before submission", models.DraftStatusDraft, models.DraftDeadlines{DraftSubmission: &future}, false},
		{"revision past submission", models.DraftStatusRevisionRequested, models.DraftDeadlines{DraftSubmission: &past}, true},
		{"in review past approval", models.DraftStatusUnderReview, models.DraftDeadlines{FinalApproval: &past}, true},
		{"submitted ignores submission deadline", models.DraftStatusSubmitted, models.DraftDeadlines{DraftSubmission: &past, FinalApproval: &future}, false},
		{"approved past publication", models.DraftStatusApproved, models.DraftDeadlines{Publication: &past}, true},
		{"no deadlines", models.DraftStatusDraft, models.DraftDeadlines{}, false},
		{"published never overdue", models.DraftStatusPublished, models.DraftDeadlines{DraftSubmission: &past, FinalApproval: &past, Publication: &past}, false},
		{"rejected never overdue", models.DraftStatusRejected, models.DraftDeadlines{Publication: &past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &models.Draft{Status: tt.status, Deadlines: tt.deadlines}
			assert.Equal(t, tt.want, IsOverdue(d, testNow))
			assert.Equal(t, tt.status, d.Status)
		})
	}
}
