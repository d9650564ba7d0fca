package models

import "time"

// MessageLog 短信/邮件发送记录表（只写不读，用于追溯）
type MessageLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`               // 主键
	Channel     string    `gorm:"index;not null" json:"channel"`      // 通道（sms/email）
	Destination string    `gorm:"index;not null" json:"destination"`  // 目标（手机号/邮箱）
	TemplateKey string    `gorm:"index;not null" json:"template_key"` // 模板标识
	Payload     JSON      `gorm:"type:json" json:"payload"`           // 模板数据
	Status      string    `gorm:"index;not null" json:"status"`       // 发送结果（sent/failed）
	Error       string    `gorm:"type:text" json:"error,omitempty"`   // 失败原因
	CreatedAt   time.Time `gorm:"index" json:"created_at"`            // 创建时间
}

// TableName 指定表名
func (MessageLog) TableName() string {
	return "message_logs"
}
