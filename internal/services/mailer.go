package services

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/rajmohan-14/Travel-itinerary/internal/config"
)

// Mailer sends the two kinds of mail this system produces: the plain
// OTP mail and the HTML+text ticket mail.
type Mailer interface {
	SendOTPEmail(to, subject, code string) error
	SendTicketEmail(to, subject, textBody, htmlBody string) error
}

// SMTPMailer talks to a plain SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) addr() string {
	return fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
}

func (m *SMTPMailer) auth() smtp.Auth {
	return smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
}

// SendOTPEmail sends the plaintext login-code mail.
func (m *SMTPMailer) SendOTPEmail(to, subject, code string) error {
	body := fmt.Sprintf("Your 5-digit OTP is: %s", code)
	msg := []byte(
		"From: " + m.cfg.From + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body + "\r\n")

	if err := smtp.SendMail(m.addr(), m.auth(), m.cfg.From, []string{to}, msg); err != nil {
		return &ProviderError{Provider: "mail", Kind: ErrKindTransport, Err: err}
	}
	return nil
}

// SendTicketEmail sends a multipart/alternative mail with a plain-text
// part and a rich HTML part.
func (m *SMTPMailer) SendTicketEmail(to, subject, textBody, htmlBody string) error {
	var body strings.Builder
	mw := multipart.NewWriter(&body)

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=\"utf-8\""},
	})
	if err != nil {
		return err
	}
	fmt.Fprint(part, textBody)

	part, err = mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=\"utf-8\""},
	})
	if err != nil {
		return err
	}
	fmt.Fprint(part, htmlBody)

	if err := mw.Close(); err != nil {
		return err
	}

	// Subject can carry non-ASCII (destination names, the ticket emoji)
	msg := []byte(
		"From: " + m.cfg.From + "\r\n" +
			"To: " + to + "\r\n" +
			"Reply-To: " + m.cfg.From + "\r\n" +
			"Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: multipart/alternative; boundary=\"" + mw.Boundary() + "\"\r\n" +
			"\r\n" +
			body.String())

	if err := smtp.SendMail(m.addr(), m.auth(), m.cfg.From, []string{to}, msg); err != nil {
		return &ProviderError{Provider: "mail", Kind: ErrKindTransport, Err: err}
	}
	return nil
}
