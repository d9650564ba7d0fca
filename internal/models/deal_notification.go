package models

import "time"

// DealNotification 活动通知历史表（按用户追加，只增不删）
type DealNotification struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                    // 主键
	DealID    uint      `gorm:"index:idx_deal_notifications_deal_user;not null" json:"deal_id"` // 活动ID
	UserID    uint      `gorm:"index:idx_deal_notifications_deal_user;not null" json:"user_id"` // 用户ID
	SentAt    time.Time `gorm:"index;not null" json:"sent_at"`                           // 记录时间
	CreatedAt time.Time `json:"created_at"`                                              // 创建时间
}

// TableName 指定表名
func (DealNotification) TableName() string {
	return "deal_notifications"
}
