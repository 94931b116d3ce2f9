package email

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"collab_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplatesRender(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)
	assert.Len(t, tm.TemplateNames(), len(defaultTemplates))

	html, err := tm.Render(TemplateInvitationReceived, TemplateData{
		"RecipientName": "Priya",
		"BrandName":     "Acme <Corp>",
		"CampaignTitle": "Summer Launch",
		"AgreedPrice":   17500,
		"Currency":      "INR",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Summer Launch")
	assert.Contains(t, html, "17500 INR")
	assert.Contains(t, html, "Acme &lt;Corp&gt;")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestLoadTemplatesOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplateDraftComment+".html"), []byte("custom {{.Message}}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)
	require.NoError(t, tm.LoadTemplates(dir))

	html, err := tm.Render(TemplateDraftComment, TemplateData{"Message": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "custom hi", html)
	assert.NotContains(t, tm.TemplateNames(), "notes")
}

func TestNoopProviderRecordsTemplateEmails(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)
	p := NewNoopProvider(tm)

	err = p.SendTemplate(context.Background(), []string{"brand@acme-corp.com"}, "Draft submitted",
		TemplateDraftSubmitted, TemplateData{"InfluencerName": "priya", "Version": 2, "CampaignTitle": "Launch"})
	require.NoError(t, err)

	sent := p.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"brand@acme-corp.com"}, sent[0].To)
	assert.Contains(t, sent[0].HTMLBody, "version 2")
}

func TestSMTPProviderBuildsMessage(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp.acme-corp.com", From: "Collab <no-reply@acme-corp.com>"}, nil)
	require.NoError(t, p.Validate())

	var buf bytes.Buffer
	_, err := p.buildMessage(&Email{
		To:       []string{"a@b.com"},
		Subject:  "Hello",
		HTMLBody: "<p>hi</p>",
	}).WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Hello")
	assert.Contains(t, raw, "To: a@b.com")
	assert.Contains(t, raw, "no-reply@acme-corp.com")
	assert.Contains(t, raw, "text/html")
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.EmailConfig{Provider: "noop"})
	require.NoError(t, err)
	assert.IsType(t, &NoopProvider{}, p)

	_, err = NewProvider(config.EmailConfig{Provider: "smtp", FromEmail: "x@acme-corp.com"})
	assert.ErrorContains(t, err, "SMTP host is required")

	_, err = NewProvider(config.EmailConfig{Provider: "resend", FromEmail: "x@acme-corp.com"})
	assert.ErrorContains(t, err, "api key")

	p, err = NewProvider(config.EmailConfig{Provider: "resend", ResendAPIKey: "re_test", FromEmail: "x@acme-corp.com", FromName: "Collab"})
	require.NoError(t, err)
	assert.IsType(t, &ResendProvider{}, p)

	_, err = NewProvider(config.EmailConfig{Provider: "pigeon"})
	assert.Error(t, err)
}
