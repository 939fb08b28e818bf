package email

import (
	"errors"

	"github.com/orris-inc/warden/internal/shared/config"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

var ErrEmailServiceNotConfigured = errors.New("email service not configured")

// Service is the mail surface the account use cases depend on
type Service interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

// NewService returns an SMTP service, or one that refuses to send when no
// SMTP host is configured
func NewService(cfg config.EmailConfig, baseURL string, log logger.Interface) Service {
	if cfg.SMTPHost == "" {
		log.Warnw("email service not configured, smtp_host is empty")
		return &unconfiguredService{logger: log}
	}

	log.Infow("email service initialized",
		"host", cfg.SMTPHost,
		"port", cfg.SMTPPort,
		"from", cfg.FromAddress,
	)
	return NewSMTPEmailService(SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		BaseURL:     baseURL,
	})
}

type unconfiguredService struct {
	logger logger.Interface
}

func (s *unconfiguredService) SendVerificationEmail(to, _ string) error {
	s.logger.Warnw("email service not configured, cannot send verification email", "to", utils.MaskEmail(to))
	return ErrEmailServiceNotConfigured
}

func (s *unconfiguredService) SendPasswordResetEmail(to, _ string) error {
	s.logger.Warnw("email service not configured, cannot send password reset email", "to", utils.MaskEmail(to))
	return ErrEmailServiceNotConfigured
}
