package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendProvider отправляет письма через Resend API
type ResendProvider struct {
	apiKey   string
	from     string
	client   *resend.Client
	renderer TemplateRenderer
}

func NewResendProvider(apiKey, from string, renderer TemplateRenderer) *ResendProvider {
	return &ResendProvider{
		apiKey:   apiKey,
		from:     from,
		client:   resend.NewClient(apiKey),
		renderer: renderer,
	}
}

func (p *ResendProvider) Send(ctx context.Context, email *Email) error {
	from := email.From
	if from == "" {
		from = p.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Cc:      email.Cc,
		Bcc:     email.Bcc,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.Body,
	}

	if _, err := p.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

func (p *ResendProvider) SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error {
	email, err := renderTemplate(p.renderer, to, subject, templateName, data)
	if err != nil {
		return err
	}
	return p.Send(ctx, email)
}

func (p *ResendProvider) Validate() error {
	if p.apiKey == "" {
		return fmt.Errorf("resend api key is required")
	}
	if p.from == "" {
		return fmt.Errorf("from address is required")
	}
	return nil
}

func (p *ResendProvider) Close() error {
	return nil
}
