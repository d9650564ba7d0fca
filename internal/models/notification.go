package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification 站内通知表
type Notification struct {
	ID          uint           `gorm:"primarykey" json:"id"`                          // 主键
	RecipientID uint           `gorm:"index;not null" json:"recipient_id"`            // 接收者ID
	SenderID    *uint          `gorm:"index" json:"sender_id,omitempty"`              // 发送者ID（系统通知为空）
	Type        string         `gorm:"index;not null" json:"type"`                    // 通知类型（commitment/deal）
	SubType     string         `gorm:"index;not null" json:"sub_type"`                // 子类型（created/approved/...）
	Title       string         `gorm:"not null" json:"title"`                         // 标题
	Message     string         `gorm:"type:text" json:"message"`                      // 正文
	RelatedID   *uint          `gorm:"index" json:"related_id,omitempty"`             // 关联对象ID
	Priority    string         `gorm:"not null;default:'normal'" json:"priority"`     // 优先级（high/normal）
	ReadAt      *time.Time     `gorm:"index" json:"read_at"`                          // 已读时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
