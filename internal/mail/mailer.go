package mail

import (
	"fmt"
	"net/url"
	"strings"

	"penlog/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer sends the account-lifecycle mails over SMTP.
type Mailer struct {
	cfg config.Config
}

// NewMailer creates a Mailer from configuration.
func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) configured() bool {
	return m != nil && m.cfg.SMTPHost != "" && m.cfg.MailFrom != ""
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if !m.configured() {
		logrus.WithField("to", to).Warn("mail config missing, skip sending")
		return nil
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail sent")
	return nil
}

// SendConfirmation mails the signup confirmation link.
func (m *Mailer) SendConfirmation(email, token string) error {
	link := m.authLink("/auth/mailAuth", email, token)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Welcome to penlog</h2>
    <p>Click the link below to confirm your email address and activate your account.</p>
    <p><a href="%s">Confirm my email</a></p>
    <p style="font-size:12px;color:#6b7280;">If you did not sign up, you can ignore this mail.</p>
  </div>
</body>
</html>`, link)
	return m.send(email, "Please confirm your email", body)
}

// SendPasswordReset mails the password-reset link.
func (m *Mailer) SendPasswordReset(email, token string) error {
	link := m.authLink("/auth/findPass", email, token)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Password reset</h2>
    <p>Click the link below to verify your email and set a new password.</p>
    <p><a href="%s">Reset my password</a></p>
    <p style="font-size:12px;color:#6b7280;">If you did not request this, you can ignore this mail.</p>
  </div>
</body>
</html>`, link)
	return m.send(email, "Complete email verification to reset your password", body)
}

func (m *Mailer) authLink(path, email, token string) string {
	base := strings.TrimRight(strings.TrimSpace(m.cfg.PublicBaseURL), "/")
	query := url.Values{}
	query.Set("email", email)
	query.Set("token", token)
	return fmt.Sprintf("%s%s?%s", base, path, query.Encode())
}
