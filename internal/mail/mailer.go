package mail

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"decora/internal/model"
)

// Mailer sends operator notifications. Delivery is best-effort; callers log
// failures instead of surfacing them.
type Mailer interface {
	SendEnquiryNotification(enquiry *model.Enquiry) error
}

// SMTPMailer delivers notifications through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer builds a mailer sending from `from` to the site owner at `to`.
func NewSMTPMailer(host string, port int, user, pass, from, to string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		to:     to,
	}
}

// SendEnquiryNotification emails the enquiry contents to the site owner.
func (m *SMTPMailer) SendEnquiryNotification(enquiry *model.Enquiry) error {
	phone := enquiry.Phone
	if phone == "" {
		phone = "N/A"
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", "New Contact Enquiry Received")
	msg.SetBody("text/html", fmt.Sprintf(
		"<h3>New Enquiry</h3>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Phone:</strong> %s</p>"+
			"<p><strong>Message:</strong> %s</p>",
		html.EscapeString(enquiry.Name),
		html.EscapeString(enquiry.Email),
		html.EscapeString(phone),
		html.EscapeString(enquiry.Message),
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send enquiry notification: %w", err)
	}
	return nil
}
