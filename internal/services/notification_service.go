package services

import (
	"context"
	"time"

	"collab_backend/internal/email"
	"collab_backend/internal/logger"
	"collab_backend/internal/models"
	"collab_backend/ws"
)

// Типы websocket-событий
const (
	EventInvitationReceived  = "invitation.received"
	EventInvitationResponded = "invitation.responded"
	EventDraftSubmitted      = "draft.submitted"
	EventDraftReviewed       = "draft.reviewed"
	EventDraftPublished      = "draft.published"
	EventDraftComment        = "draft.comment"
	EventDraftOverdue        = "draft.overdue"
)

const notifyTimeout = 10 * time.Second

// EventPusher - доставка событий в открытые websocket-соединения
type EventPusher interface {
	SendToUser(userID string, event ws.Event)
}

type Notification struct {
	Recipient *models.User
	Event     string
	Subject   string
	Template  string
	Data      email.TemplateData
	Payload   any
}

// Notifier - уведомления сторон. Ошибки доставки не ломают запрос.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotifierImpl struct {
	email email.Provider
	hub   EventPusher
}

func NewNotifier(provider email.Provider, hub EventPusher) Notifier {
	return &NotifierImpl{email: provider, hub: hub}
}

func (n *NotifierImpl) Notify(ctx context.Context, note Notification) {
	if note.Recipient == nil {
		return
	}

	if n.hub != nil {
		n.hub.SendToUser(note.Recipient.ID, ws.Event{Type: note.Event, Data: note.Payload})
	}

	address := note.Recipient.GetEmail()
	if n.email == nil || address == "" || note.Template == "" {
		return
	}

	data := email.TemplateData{}
	for k, v := range note.Data {
		data[k] = v
	}
	data["RecipientName"] = note.Recipient.Name

	// запрос может завершиться раньше, чем уйдет письмо
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := n.email.SendTemplate(sendCtx, []string{address}, note.Subject, note.Template, data); err != nil {
		logger.CtxWarn(ctx, "Failed to send notification email",
			"event", note.Event,
			"recipient_id", note.Recipient.ID,
			"error", err,
		)
	}
}

func displayName(u *models.User) string {
	if u == nil {
		return ""
	}
	if u.Role == models.UserRoleBrand && u.CompanyName != "" {
		return u.CompanyName
	}
	if u.Name != "" {
		return u.Name
	}
	return u.GetInstagramUsername()
}
