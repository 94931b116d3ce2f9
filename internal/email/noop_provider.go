package email

import (
	"context"
	"sync"

	"collab_backend/internal/logger"
)

// NoopProvider ничего не отправляет: пишет письмо в лог и хранит его в памяти.
// Используется в разработке и тестах.
type NoopProvider struct {
	renderer TemplateRenderer

	mu   sync.Mutex
	sent []Email
}

func NewNoopProvider(renderer TemplateRenderer) *NoopProvider {
	return &NoopProvider{renderer: renderer}
}

func (p *NoopProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxDebug(ctx, "Email suppressed (noop provider)", "to", email.To, "subject", email.Subject)

	p.mu.Lock()
	p.sent = append(p.sent, *email)
	p.mu.Unlock()
	return nil
}

func (p *NoopProvider) SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error {
	email, err := renderTemplate(p.renderer, to, subject, templateName, data)
	if err != nil {
		return err
	}
	return p.Send(ctx, email)
}

// Sent возвращает копию отправленных писем
func (p *NoopProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}

func (p *NoopProvider) Validate() error { return nil }
func (p *NoopProvider) Close() error    { return nil }
