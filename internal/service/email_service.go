package service

import (
	"fmt"
	"strings"

	"github.com/pifa-next/internal/config"
	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/queue"
	"github.com/pifa-next/internal/repository"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg            config.EmailConfig
	messageLogRepo repository.MessageLogRepository
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg config.EmailConfig, messageLogRepo repository.MessageLogRepository) *EmailService {
	return &EmailService{cfg: cfg, messageLogRepo: messageLogRepo}
}

// Send 发送一封模板邮件并写入发送记录
func (s *EmailService) Send(payload queue.EmailSendPayload) error {
	if s == nil {
		return nil
	}
	destination := strings.TrimSpace(payload.Destination)
	if destination == "" {
		return nil
	}

	status := constants.MessageStatusSent
	sendErr := ""
	if !s.cfg.Enabled {
		status = constants.MessageStatusFailed
		sendErr = "email channel disabled"
	} else {
		logger.Infow("email_sent",
			"from", s.cfg.From,
			"destination", destination,
			"template", payload.TemplateKey,
		)
	}

	if err := s.messageLogRepo.Create(&models.MessageLog{
		Channel:     constants.MessageChannelEmail,
		Destination: destination,
		TemplateKey: payload.TemplateKey,
		Payload:     models.JSON(payload.TemplateData),
		Status:      status,
		Error:       sendErr,
	}); err != nil {
		return fmt.Errorf("write email log: %w", err)
	}
	return nil
}
