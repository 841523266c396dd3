package service

import (
	"fmt"
	"html"
	"net/smtp"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cookatlas/backend/config"
	"github.com/cookatlas/backend/internal/models"
)

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	logger       *zap.Logger

	// logBodies allows unsent email bodies, which carry live reset links, in logs.
	logBodies bool

	// send is smtp.SendMail outside tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) *EmailService {
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.EmailFrom,
		fromName:     cfg.EmailFromName,
		logger:       logger,
		logBodies:    cfg.Environment.IsDevelopment(),
		send:         smtp.SendMail,
	}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	// If SMTP is not configured, log the email instead
	if s.smtpHost == "" || s.smtpPort == "" {
		fields := []zap.Field{zap.String("to", to), zap.String("subject", subject)}
		if s.logBodies {
			fields = append(fields, zap.String("body", body))
		}
		s.logger.Info("SMTP not configured, email not sent", fields...)
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := s.send(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendPasswordResetEmail mails the reset link to user.
func (s *EmailService) SendPasswordResetEmail(user *models.User, link string) error {
	subject := fmt.Sprintf("Reset Your Password - %s", s.fromName)
	return s.SendEmail(user.Email, subject, s.buildPasswordResetBody(user, link))
}

func (s *EmailService) buildPasswordResetBody(user *models.User, link string) string {
	caser := cases.Title(language.English)
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Reset Your Password</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Hello %s,</h2>
	<p>We received a request to reset the password of your %s account.</p>
	<p style="text-align: center; margin: 30px 0;">
		<a href="%s" style="background-color: #d35400; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px;">Reset Password</a>
	</p>
	<p style="color: #666; font-size: 14px;">If the button above doesn't work, copy and paste this link into your browser:</p>
	<p style="background-color: #eee; padding: 10px; word-break: break-all; font-size: 12px;">%s</p>
	<p style="color: #666; font-size: 12px;">This link expires in one hour. If you didn't ask for a reset, you can ignore this email.</p>
</body>
</html>
`, html.EscapeString(caser.String(user.Username)), html.EscapeString(s.fromName), html.EscapeString(link), html.EscapeString(link))
}
