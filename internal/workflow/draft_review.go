package workflow

import (
	"strings"
	"time"

	"collab_backend/internal/models"
	"collab_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// Actor - кто выполняет переход (для записи в feedback)
type Actor struct {
	UserID string
	Role   models.UserRole
}

// ReviewAction - решение бренда по черновику
type ReviewAction string

const (
	ActionStartReview    ReviewAction = "start_review"
	ActionApprove        ReviewAction = "approve"
	ActionReject         ReviewAction = "reject"
	ActionRequestChanges ReviewAction = "request_changes"
)

func (a ReviewAction) IsValid() bool {
	switch a {
	case ActionStartReview, ActionApprove, ActionReject, ActionRequestChanges:
		return true
	}
	return false
}

func invalidTransition(d *models.Draft, action string) error {
	return apperrors.ErrInvalidTransition("draft", string(d.Status), action)
}

func inReview(d *models.Draft) bool {
	return d.Status == models.DraftStatusSubmitted || d.Status == models.DraftStatusUnderReview
}

func appendFeedback(d *models.Draft, actor Actor, fbType models.FeedbackType, message string, now time.Time) {
	d.Feedback = append(d.Feedback, models.Feedback{
		From:      actor.Role,
		UserID:    actor.UserID,
		Message:   strings.TrimSpace(message),
		Type:      fbType,
		Timestamp: now,
	})
}

// UpdateContent - правка контента до первой отправки
func UpdateContent(d *models.Draft, content models.DraftContent) error {
	if d.Status != models.DraftStatusDraft {
		return invalidTransition(d, "update_content")
	}
	d.Content = datatypes.NewJSONType(content)
	return nil
}

// Submit: draft -> submitted
func Submit(d *models.Draft, now time.Time) error {
	if d.Status != models.DraftStatusDraft {
		return invalidTransition(d, "submit")
	}
	d.Status = models.DraftStatusSubmitted
	d.SubmittedAt = &now
	return nil
}

// Resubmit: revision_requested -> submitted. Текущий контент уходит в revisions
// до того, как будет заменен новым.
func Resubmit(d *models.Draft, content models.DraftContent, now time.Time) error {
	if d.Status != models.DraftStatusRevisionRequested {
		return invalidTransition(d, "resubmit")
	}

	d.Revisions = append(d.Revisions, models.Revision{
		Version:    d.CurrentVersion(),
		Content:    d.Content.Data(),
		ArchivedAt: now,
	})
	d.Content = datatypes.NewJSONType(content)
	d.Status = models.DraftStatusSubmitted
	d.SubmittedAt = &now
	return nil
}

// StartReview: submitted -> under_review
func StartReview(d *models.Draft, now time.Time) error {
	if d.Status != models.DraftStatusSubmitted {
		return invalidTransition(d, string(ActionStartReview))
	}
	d.Status = models.DraftStatusUnderReview
	return nil
}

// Approve: submitted|under_review -> approved
func Approve(d *models.Draft, actor Actor, message string, now time.Time) error {
	if !inReview(d) {
		return invalidTransition(d, string(ActionApprove))
	}
	d.Status = models.DraftStatusApproved
	approvedBy := actor.UserID
	d.ApprovedBy = &approvedBy
	d.ApprovedAt = &now
	appendFeedback(d, actor, models.FeedbackTypeApproval, message, now)
	return nil
}

// Reject: submitted|under_review -> rejected (терминальный)
func Reject(d *models.Draft, actor Actor, message string, now time.Time) error {
	if !inReview(d) {
		return invalidTransition(d, string(ActionReject))
	}
	d.Status = models.DraftStatusRejected
	appendFeedback(d, actor, models.FeedbackTypeRejection, message, now)
	return nil
}

// RequestChanges: submitted|under_review -> revision_requested
func RequestChanges(d *models.Draft, actor Actor, message string, now time.Time) error {
	if !inReview(d) {
		return invalidTransition(d, string(ActionRequestChanges))
	}
	d.Status = models.DraftStatusRevisionRequested
	appendFeedback(d, actor, models.FeedbackTypeRevision, message, now)
	return nil
}

// Review применяет решение бренда
func Review(d *models.Draft, action ReviewAction, actor Actor, message string, now time.Time) error {
	switch action {
	case ActionStartReview:
		return StartReview(d, now)
	case ActionApprove:
		return Approve(d, actor, message, now)
	case ActionReject:
		return Reject(d, actor, message, now)
	case ActionRequestChanges:
		return RequestChanges(d, actor, message, now)
	default:
		return apperrors.ValidationError(map[string]string{"action": "Must be one of: start_review, approve, reject, request_changes"})
	}
}

// Publish: approved -> published (терминальный)
func Publish(d *models.Draft, postURL string, now time.Time) error {
	if d.Status != models.DraftStatusApproved {
		return invalidTransition(d, "publish")
	}
	d.Status = models.DraftStatusPublished
	d.PublishedAt = &now
	d.PostURL = postURL
	return nil
}

// AddComment добавляет комментарий без смены статуса
func AddComment(d *models.Draft, actor Actor, message string, now time.Time) error {
	if d.Status.IsTerminal() {
		return invalidTransition(d, "comment")
	}
	if strings.TrimSpace(message) == "" {
		return apperrors.ValidationError(map[string]string{"message": "This field is required"})
	}
	appendFeedback(d, actor, models.FeedbackTypeComment, message, now)
	return nil
}

// IsOverdue - только проверка, статус не меняется
func IsOverdue(d *models.Draft, now time.Time) bool {
	switch d.Status {
	case models.DraftStatusDraft, models.DraftStatusRevisionRequested:
		return after(now, d.Deadlines.DraftSubmission)
	case models.DraftStatusSubmitted, models.DraftStatusUnderReview:
		return after(now, d.Deadlines.FinalApproval)
	case models.DraftStatusApproved:
		return after(now, d.Deadlines.Publication)
	default:
		return false
	}
}

func after(now time.Time, deadline *time.Time) bool {
	return deadline != nil && now.After(*deadline)
}
