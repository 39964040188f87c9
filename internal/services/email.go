package services

import (
	"fmt"
	"net/smtp"

	"rating-system/pkg/config"

	"go.uber.org/zap"
)

type EmailServiceInterface interface {
	SendConfirmationCode(to, code string) error
}

type emailService struct {
	cfg    *config.SMTPConfig
	logger *zap.Logger
}

func NewEmailService(cfg *config.SMTPConfig, logger *zap.Logger) EmailServiceInterface {
	return &emailService{cfg: cfg, logger: logger}
}

func (s *emailService) SendConfirmationCode(to, code string) error {
	subject := "Confirmation code"
	body := "Код для получения JWT-токена: " + code

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-version: 1.0;\r\n"+
		"Content-Type: text/plain; charset=\"UTF-8\";\r\n\r\n"+
		"%s\r\n", to, subject, body))

	var auth smtp.Auth
	if s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.FromEmail, s.cfg.Password, s.cfg.Host)
	}

	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, message); err != nil {
		s.logger.Error("не удалось отправить письмо с кодом", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("письмо с кодом подтверждения отправлено", zap.String("to", to))
	return nil
}
