package email

import (
	"context"
	"fmt"
	"strings"

	"collab_backend/internal/config"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет готовое сообщение
	Send(ctx context.Context, email *Email) error

	// SendTemplate рендерит шаблон и отправляет результат как HTML
	SendTemplate(ctx context.Context, to []string, subject string, templateName string, data TemplateData) error

	// Validate проверяет конфигурацию провайдера
	Validate() error

	Close() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}

// NewProvider выбирает реализацию по email.provider: smtp, resend или noop
func NewProvider(cfg config.EmailConfig) (Provider, error) {
	renderer, err := NewDefaultTemplateManager()
	if err != nil {
		return nil, err
	}
	if cfg.TemplatesDir != "" {
		if err := renderer.LoadTemplates(cfg.TemplatesDir); err != nil {
			return nil, fmt.Errorf("load email templates: %w", err)
		}
	}

	from := formatFrom(cfg.FromName, cfg.FromEmail)

	var p Provider
	switch strings.ToLower(cfg.Provider) {
	case "smtp":
		p = NewSMTPProvider(&SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     from,
		}, renderer)
	case "resend":
		p = NewResendProvider(cfg.ResendAPIKey, from, renderer)
	case "noop", "":
		p = NewNoopProvider(renderer)
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("email provider %s: %w", cfg.Provider, err)
	}
	return p, nil
}

func formatFrom(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// renderTemplate - общая часть SendTemplate для всех провайдеров
func renderTemplate(renderer TemplateRenderer, to []string, subject, templateName string, data TemplateData) (*Email, error) {
	if renderer == nil {
		return nil, fmt.Errorf("template renderer is not configured")
	}
	html, err := renderer.Render(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return &Email{To: to, Subject: subject, HTMLBody: html}, nil
}
