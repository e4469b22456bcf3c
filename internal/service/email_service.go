package service

import (
	"fmt"
	"net/url"

	"quizhub_backend/internal/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail over plain SMTP.
type EmailService struct {
	cfg    config.SMTPConfig
	send   func(m *gomail.Message) error
	logger *zap.Logger
}

func NewEmailService(cfg config.SMTPConfig, logger *zap.Logger) *EmailService {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &EmailService{
		cfg:    cfg,
		send:   func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		logger: logger,
	}
}

func (s *EmailService) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.send(m); err != nil {
		s.logger.Error("mail delivery failed", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// BuildResetMessage renders the reset-password mail body. With a frontend URL
// configured the mail carries a clickable link; otherwise the raw code is
// shown for manual entry.
func BuildResetMessage(fullName, email, token, resetBaseURL string) string {
	name := fullName
	if name == "" {
		name = email
	}

	if resetBaseURL != "" {
		link := fmt.Sprintf("%s?email=%s&token=%s",
			resetBaseURL, url.QueryEscape(email), url.QueryEscape(token))
		return fmt.Sprintf(
			"<p>Hello %s,</p>"+
				"<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in 1 hour.</p>"+
				"<p><a href=%q>Reset your password</a></p>"+
				"<p>If you did not request this, you can ignore this mail.</p>",
			name, link)
	}

	return fmt.Sprintf(
		"<p>Hello %s,</p>"+
			"<p>We received a request to reset your password. Use the code below within 1 hour:</p>"+
			"<p><b>%s</b></p>"+
			"<p>If you did not request this, you can ignore this mail.</p>",
		name, token)
}
