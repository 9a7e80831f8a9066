package email

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"espacestage-backend/config"
)

// Service sends transactional notifications over SMTP. All sends are
// fire-and-forget from the caller's perspective: a failed notification is
// logged upstream and never fails the operation that triggered it.
type Service struct {
	dialer    *gomail.Dialer
	fromEmail string
	enabled   bool
}

// NewService creates the SMTP notification service. When SMTP credentials are
// missing the service stays in no-op mode so local development works without
// a mail relay.
func NewService(cfg *config.Config) *Service {
	enabled := cfg.SMTPUsername != "" && cfg.SMTPPassword != ""
	var dialer *gomail.Dialer
	if enabled {
		dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return &Service{
		dialer:    dialer,
		fromEmail: cfg.SMTPFromEmail,
		enabled:   enabled,
	}
}

// IsConfigured reports whether the service can actually dispatch mail.
func (s *Service) IsConfigured() bool {
	return s.enabled
}

// ApplicationReceivedData feeds the new-application notification sent to the
// offer's company.
type ApplicationReceivedData struct {
	CompanyName string
	OfferTitle  string
	StudentName string
	Message     string
	SubmittedAt string
}

// StatusChangedData feeds the decision notification sent to the student.
type StatusChangedData struct {
	StudentName string
	OfferTitle  string
	CompanyName string
	Status      string
}

const applicationReceivedTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Nouvelle candidature</h1></div>
        <div class="content">
            <p>Bonjour {{.CompanyName}},</p>
            <p><strong>{{.StudentName}}</strong> a postulé à votre offre
               <strong>{{.OfferTitle}}</strong> le {{.SubmittedAt}}.</p>
            {{if .Message}}<div class="message-box">{{.Message}}</div>{{end}}
        </div>
        <div class="footer">EspaceStage</div>
    </div>
</body>
</html>`

const statusChangedTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Votre candidature a été {{if eq .Status "accepted"}}acceptée{{else}}refusée{{end}}</h1></div>
        <div class="content">
            <p>Bonjour {{.StudentName}},</p>
            <p>{{.CompanyName}} a {{if eq .Status "accepted"}}accepté{{else}}refusé{{end}}
               votre candidature pour l'offre <strong>{{.OfferTitle}}</strong>.</p>
        </div>
        <div class="footer">EspaceStage</div>
    </div>
</body>
</html>`

// SendApplicationReceived notifies a company of a new application.
func (s *Service) SendApplicationReceived(to string, data ApplicationReceivedData) error {
	subject := fmt.Sprintf("Nouvelle candidature : %s", data.OfferTitle)
	return s.send(to, subject, applicationReceivedTemplate, data)
}

// SendStatusChanged notifies a student that their application was decided.
func (s *Service) SendStatusChanged(to string, data StatusChangedData) error {
	subject := fmt.Sprintf("Candidature %s : %s", data.Status, data.OfferTitle)
	return s.send(to, subject, statusChangedTemplate, data)
}

func (s *Service) send(to, subject, tmpl string, data interface{}) error {
	if !s.enabled {
		return fmt.Errorf("email service not configured")
	}

	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	return s.dialer.DialAndSend(m)
}
