package queue

import (
	"encoding/json"

	"github.com/pifa-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationDispatch 站内通知分发任务
	TaskNotificationDispatch = constants.TaskNotificationDispatch
	// TaskSMSSend 短信发送任务
	TaskSMSSend = constants.TaskSMSSend
	// TaskEmailSend 邮件发送任务
	TaskEmailSend = constants.TaskEmailSend
)

// NotificationDispatchPayload 站内通知分发任务载荷
type NotificationDispatchPayload struct {
	RecipientID uint   `json:"recipient_id"`
	SenderID    *uint  `json:"sender_id,omitempty"`
	Type        string `json:"type"`
	SubType     string `json:"sub_type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	RelatedID   *uint  `json:"related_id,omitempty"`
	Priority    string `json:"priority"`
}

// SMSSendPayload 短信发送任务载荷
type SMSSendPayload struct {
	Destination  string                 `json:"destination"`
	TemplateKey  string                 `json:"template_key"`
	TemplateData map[string]interface{} `json:"template_data,omitempty"`
}

// EmailSendPayload 邮件发送任务载荷
type EmailSendPayload struct {
	Destination  string                 `json:"destination"`
	TemplateKey  string                 `json:"template_key"`
	TemplateData map[string]interface{} `json:"template_data,omitempty"`
}

// NewNotificationDispatchTask 创建站内通知分发任务
func NewNotificationDispatchTask(payload NotificationDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationDispatch, body), nil
}

// NewSMSSendTask 创建短信发送任务
func NewSMSSendTask(payload SMSSendPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSMSSend, body), nil
}

// NewEmailSendTask 创建邮件发送任务
func NewEmailSendTask(payload EmailSendPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEmailSend, body), nil
}
