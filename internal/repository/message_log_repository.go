package repository

import (
	"github.com/pifa-next/internal/models"

	"gorm.io/gorm"
)

// MessageLogRepository 消息发送记录数据访问接口（只写，管理端可查）
type MessageLogRepository interface {
	Create(log *models.MessageLog) error
	List(filter MessageLogListFilter) ([]models.MessageLog, int64, error)
}

// GormMessageLogRepository GORM 实现
type GormMessageLogRepository struct {
	db *gorm.DB
}

// NewMessageLogRepository 创建消息发送记录仓库
func NewMessageLogRepository(db *gorm.DB) *GormMessageLogRepository {
	return &GormMessageLogRepository{db: db}
}

// Create 写入一条发送记录
func (r *GormMessageLogRepository) Create(log *models.MessageLog) error {
	return r.db.Create(log).Error
}

// List 发送记录列表
func (r *GormMessageLogRepository) List(filter MessageLogListFilter) ([]models.MessageLog, int64, error) {
	var logs []models.MessageLog
	query := r.db.Model(&models.MessageLog{})

	if filter.Channel != "" {
		query = query.Where("channel = ?", filter.Channel)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Destination != "" {
		query = query.Where("destination = ?", filter.Destination)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
