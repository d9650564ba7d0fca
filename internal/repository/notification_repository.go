package repository

import (
	"errors"
	"time"

	"github.com/pifa-next/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository 站内通知数据访问接口
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByIDAndRecipient(id, recipientID uint) (*models.Notification, error)
	ListByRecipient(filter NotificationListFilter) ([]models.Notification, int64, error)
	MarkRead(id, recipientID uint, at time.Time) error
	MarkAllRead(recipientID uint, at time.Time) error
	UnreadCount(recipientID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormNotificationRepository
}

// GormNotificationRepository GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建站内通知仓库
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormNotificationRepository) WithTx(tx *gorm.DB) *GormNotificationRepository {
	if tx == nil {
		return r
	}
	return &GormNotificationRepository{db: tx}
}

// Create 创建通知
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByIDAndRecipient 获取接收者自己的通知
func (r *GormNotificationRepository) GetByIDAndRecipient(id, recipientID uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Where("id = ? AND recipient_id = ?", id, recipientID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

// ListByRecipient 接收者通知列表
func (r *GormNotificationRepository) ListByRecipient(filter NotificationListFilter) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := r.db.Model(&models.Notification{}).Where("recipient_id = ?", filter.RecipientID)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.OnlyUnread {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// MarkRead 标记单条已读
func (r *GormNotificationRepository) MarkRead(id, recipientID uint, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ? AND read_at IS NULL", id, recipientID).
		Update("read_at", at).Error
}

// MarkAllRead 标记全部已读
func (r *GormNotificationRepository) MarkAllRead(recipientID uint, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Update("read_at", at).Error
}

// UnreadCount 未读数量
func (r *GormNotificationRepository) UnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Count(&count).Error
	return count, err
}
