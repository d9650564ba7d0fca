package worker

import (
	"context"
	"encoding/json"

	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/provider"
	"github.com/pifa-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotificationDispatch, c.handleNotificationDispatch)
	mux.HandleFunc(queue.TaskSMSSend, c.handleSMSSend)
	mux.HandleFunc(queue.TaskEmailSend, c.handleEmailSend)
}

func (c *Consumer) handleNotificationDispatch(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.NotificationDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notification_dispatch_unmarshal_failed", "error", err)
		return err
	}
	if payload.RecipientID == 0 {
		logger.Debugw("worker_notification_dispatch_skip_invalid_payload")
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_notification_dispatch_skip_service_nil", "recipient_id", payload.RecipientID)
		return nil
	}
	if err := c.NotificationService.Dispatch(payload); err != nil {
		logger.Warnw("worker_notification_dispatch_failed", "recipient_id", payload.RecipientID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleSMSSend(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.SMSSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_sms_send_unmarshal_failed", "error", err)
		return err
	}
	if payload.Destination == "" {
		logger.Debugw("worker_sms_send_skip_empty_destination", "template", payload.TemplateKey)
		return nil
	}
	if c.SMSService == nil {
		logger.Warnw("worker_sms_send_skip_service_nil", "destination", payload.Destination)
		return nil
	}
	if err := c.SMSService.Send(payload); err != nil {
		logger.Warnw("worker_sms_send_failed", "destination", payload.Destination, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleEmailSend(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.EmailSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_email_send_unmarshal_failed", "error", err)
		return err
	}
	if payload.Destination == "" {
		logger.Debugw("worker_email_send_skip_empty_destination", "template", payload.TemplateKey)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_email_send_skip_service_nil", "destination", payload.Destination)
		return nil
	}
	if err := c.EmailService.Send(payload); err != nil {
		logger.Warnw("worker_email_send_failed", "destination", payload.Destination, "error", err)
		return err
	}
	return nil
}
