package email

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"gopkg.in/gomail.v2"
)

// sendTimeout bounds one dial-and-send round trip; gomail itself has no
// deadline past the dial, so a stalled SMTP server would otherwise hang
// the caller.
const sendTimeout = 15 * time.Second

// SMTPSender dispatches email over SMTP.
type SMTPSender struct {
	config    Config
	templates *TemplateManager
	dialer    *gomail.Dialer
	dispatch  func(*gomail.Message) error
	timeout   time.Duration
}

// NewSMTPSender builds an SMTP-backed Provider.
func NewSMTPSender(config Config) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: config.Host}
	}

	return &SMTPSender{
		config:    config,
		templates: tm,
		dialer:    dialer,
		dispatch:  func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		timeout:   sendTimeout,
	}, nil
}

// SendVerification sends the email-verification message.
func (s *SMTPSender) SendVerification(toEmail, name, token string) error {
	actionURL := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s",
		s.config.BaseURL, url.QueryEscape(token))

	body, err := s.templates.Render("verification", templateData{
		UserName:  name,
		ActionURL: actionURL,
	})
	if err != nil {
		return err
	}

	return s.send(&Message{
		To:       toEmail,
		Subject:  "Verify Your Email Address - Snapdi",
		HTMLBody: body,
	})
}

// SendWelcome sends the post-verification welcome message.
func (s *SMTPSender) SendWelcome(toEmail, name string) error {
	body, err := s.templates.Render("welcome", templateData{UserName: name})
	if err != nil {
		return err
	}

	return s.send(&Message{
		To:       toEmail,
		Subject:  "Welcome to Snapdi!",
		HTMLBody: body,
	})
}

// SendPasswordReset sends the password-reset message.
func (s *SMTPSender) SendPasswordReset(toEmail, name, token string) error {
	actionURL := fmt.Sprintf("%s/reset-password?token=%s",
		s.config.BaseURL, url.QueryEscape(token))

	body, err := s.templates.Render("password_reset", templateData{
		UserName:  name,
		ActionURL: actionURL,
	})
	if err != nil {
		return err
	}

	return s.send(&Message{
		To:       toEmail,
		Subject:  "Reset Your Password - Snapdi",
		HTMLBody: body,
	})
}

func (s *SMTPSender) send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	errc := make(chan error, 1)
	go func() { errc <- s.dispatch(m) }()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
		}
		return nil
	case <-time.After(s.timeout):
		return fmt.Errorf("sending email to %s timed out after %s", msg.To, s.timeout)
	}
}
