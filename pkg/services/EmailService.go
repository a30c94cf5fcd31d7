package services

import (
	"html/template"
	"strings"

	"github.com/adampresley/adamgokit/email"
)

var contactTemplate = template.Must(template.New("email").Parse(`
<h1>New message from the website</h1>
<p><strong>{{.Name}}</strong> ({{.Email}}) wrote:</p>
<p>{{.Subject}}</p>
<blockquote>{{.Message}}</blockquote>
`))

type Mailer interface {
	Send(mail email.Mail) error
}

func NewResendMailer(apiKey string) Mailer {
	return email.NewResendService(&email.Config{
		ApiKey: apiKey,
	})
}

func renderContactEmail(message ContactMessage) string {
	parsedTemplate := strings.Builder{}
	_ = contactTemplate.Execute(&parsedTemplate, message)
	return parsedTemplate.String()
}
