package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

const leadAssignedSubject = "New lead assigned to you"

var leadAssignedTemplate = template.Must(template.New("lead_assigned").Parse(`
<h2>Hello {{.DealerName}},</h2>
<p>A new lead has been routed to you:</p>
<ul>
  <li><strong>Name:</strong> {{.LeadName}}</li>
  <li><strong>Phone:</strong> {{.Phone}}</li>
  <li><strong>Location:</strong> {{.State}} {{.Zip}}</li>
  {{if .HomeType}}<li><strong>Home type:</strong> {{.HomeType}}</li>{{end}}
  {{if .TimelineBand}}<li><strong>Timeline:</strong> {{.TimelineBand}}</li>{{end}}
  {{if .ContactTime}}<li><strong>Best time to reach:</strong> {{.ContactTime}}</li>{{end}}
</ul>
<p>Please follow up as soon as possible.</p>
`))

func (s *SMTPSender) SendLeadAssignedEmail(ctx context.Context, toEmail string, data LeadAssignedData) error {
	var body bytes.Buffer
	if err := leadAssignedTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render lead assigned email: %w", err)
	}
	return s.send(ctx, toEmail, leadAssignedSubject, body.String())
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
