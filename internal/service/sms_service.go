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

// SMSService 短信发送服务
//
// 未接入真实网关时按配置降级为仅记录发送日志；
// 失败只落 MessageLog，不向主流程传播。
type SMSService struct {
	cfg            config.SMSConfig
	messageLogRepo repository.MessageLogRepository
}

// NewSMSService 创建短信服务
func NewSMSService(cfg config.SMSConfig, messageLogRepo repository.MessageLogRepository) *SMSService {
	return &SMSService{cfg: cfg, messageLogRepo: messageLogRepo}
}

// Send 发送一条模板短信并写入发送记录
func (s *SMSService) Send(payload queue.SMSSendPayload) error {
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
		sendErr = "sms channel disabled"
	} else {
		logger.Infow("sms_sent",
			"sender", s.cfg.SenderName,
			"destination", destination,
			"template", payload.TemplateKey,
		)
	}

	if err := s.messageLogRepo.Create(&models.MessageLog{
		Channel:     constants.MessageChannelSMS,
		Destination: destination,
		TemplateKey: payload.TemplateKey,
		Payload:     models.JSON(payload.TemplateData),
		Status:      status,
		Error:       sendErr,
	}); err != nil {
		return fmt.Errorf("write sms log: %w", err)
	}
	return nil
}
