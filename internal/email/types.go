package email

// Email - исходящее письмо. Если HTMLBody пуст, отправляется Body как text/plain.
type Email struct {
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	ReplyTo  string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData - данные для шаблонов писем
type TemplateData map[string]interface{}
