package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Имена встроенных шаблонов уведомлений
const (
	TemplateInvitationReceived  = "invitation_received"
	TemplateInvitationResponded = "invitation_responded"
	TemplateDraftSubmitted      = "draft_submitted"
	TemplateDraftReviewed       = "draft_reviewed"
	TemplateDraftPublished      = "draft_published"
	TemplateDraftComment        = "draft_comment"
	TemplateDraftOverdue        = "draft_overdue"
)

const layoutStart = `<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;color:#222">`
const layoutEnd = `<p style="color:#888;font-size:12px">You are receiving this because you have an account on our platform.</p></body></html>`

var defaultTemplates = map[string]string{
	TemplateInvitationReceived: layoutStart + `
<h2>New campaign invitation</h2>
<p>Hi {{.RecipientName}},</p>
<p><b>{{.BrandName}}</b> invited you to the campaign <b>{{.CampaignTitle}}</b>.</p>
{{if .AgreedPrice}}<p>Proposed fee: {{.AgreedPrice}} {{.Currency}}</p>{{end}}
<p>Open your dashboard to accept or decline.</p>` + layoutEnd,

	TemplateInvitationResponded: layoutStart + `
<h2>Invitation {{.Decision}}</h2>
<p>Hi {{.RecipientName}},</p>
<p><b>{{.InfluencerName}}</b> has {{.Decision}} your invitation to <b>{{.CampaignTitle}}</b>.</p>` + layoutEnd,

	TemplateDraftSubmitted: layoutStart + `
<h2>Draft ready for review</h2>
<p>Hi {{.RecipientName}},</p>
<p><b>{{.InfluencerName}}</b> submitted version {{.Version}} of their content for <b>{{.CampaignTitle}}</b>.</p>` + layoutEnd,

	TemplateDraftReviewed: layoutStart + `
<h2>Your draft was reviewed</h2>
<p>Hi {{.RecipientName}},</p>
<p>Status for <b>{{.CampaignTitle}}</b>: <b>{{.Status}}</b>.</p>
{{if .Message}}<blockquote>{{.Message}}</blockquote>{{end}}` + layoutEnd,

	TemplateDraftPublished: layoutStart + `
<h2>Content published</h2>
<p>Hi {{.RecipientName}},</p>
<p><b>{{.InfluencerName}}</b> published the content for <b>{{.CampaignTitle}}</b>.</p>
{{if .PostURL}}<p><a href="{{.PostURL}}">View post</a></p>{{end}}` + layoutEnd,

	TemplateDraftComment: layoutStart + `
<h2>New comment</h2>
<p>Hi {{.RecipientName}},</p>
<p>{{.AuthorName}} commented on the draft for <b>{{.CampaignTitle}}</b>:</p>
<blockquote>{{.Message}}</blockquote>` + layoutEnd,

	TemplateDraftOverdue: layoutStart + `
<h2>Deadline missed</h2>
<p>Hi {{.RecipientName}},</p>
<p>The {{.Deadline}} deadline for <b>{{.CampaignTitle}}</b> has passed. Current status: <b>{{.Status}}</b>.</p>` + layoutEnd,
}

// TemplateManager реализует TemplateRenderer поверх html/template
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager - менеджер со встроенными шаблонами уведомлений
func NewDefaultTemplateManager() (*TemplateManager, error) {
	tm := NewTemplateManager()
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, fmt.Errorf("built-in template %s: %w", name, err)
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Option("missingkey=zero").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

// LoadTemplates загружает *.html из директории; имя шаблона - имя файла без расширения.
// Файлы с именами встроенных шаблонов их заменяют.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}
		return nil
	})
}

func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
