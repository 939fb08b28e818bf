package email

import (
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for email links (e.g., "http://localhost:8080")
}

// sender is satisfied by *gomail.Dialer
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer sender
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendVerificationEmail mails the link that confirms the address
func (s *SMTPEmailService) SendVerificationEmail(to, token string) error {
	return s.send(s.verificationMessage(to, token))
}

func (s *SMTPEmailService) verificationURL(token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", s.config.BaseURL, url.QueryEscape(token))
}

func (s *SMTPEmailService) verificationMessage(to, token string) *gomail.Message {
	link := s.verificationURL(token)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to Warden!</h2>
			<p>Please verify your email address by clicking the link below:</p>
			<p><a href="%s">Verify Email Address</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>If you didn't create an account, please ignore this email.</p>
		</body>
		</html>
	`, link, link)

	plainBody := fmt.Sprintf(`
Welcome to Warden!

Please verify your email address by visiting:
%s

Verification code: %s

If you didn't create an account, please ignore this email.
	`, link, token)

	return s.message(to, "Verify Your Email Address", htmlBody, plainBody)
}

// SendPasswordResetEmail mails the link that lets the account choose a new password
func (s *SMTPEmailService) SendPasswordResetEmail(to, token string) error {
	return s.send(s.passwordResetMessage(to, token))
}

func (s *SMTPEmailService) passwordResetURL(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, url.QueryEscape(token))
}

func (s *SMTPEmailService) passwordResetMessage(to, token string) *gomail.Message {
	link := s.passwordResetURL(token)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Reset your Warden password</h2>
			<p>Choose a new password by clicking the link below:</p>
			<p><a href="%s">Reset Password</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>If you didn't ask for a new password, please ignore this email.</p>
		</body>
		</html>
	`, link, link)

	plainBody := fmt.Sprintf(`
Reset your Warden password

Choose a new password by visiting:
%s

Reset code: %s

If you didn't ask for a new password, please ignore this email.
	`, link, token)

	return s.message(to, "Reset Your Password", htmlBody, plainBody)
}

func (s *SMTPEmailService) message(to, subject, htmlBody, plainBody string) *gomail.Message {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}

func (s *SMTPEmailService) send(m *gomail.Message) error {
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
