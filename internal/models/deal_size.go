package models

import (
	"time"

	"gorm.io/gorm"
)

// DealSize 批发活动规格表
type DealSize struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                        // 主键
	DealID         uint           `gorm:"index;not null" json:"deal_id"`                               // 所属活动ID
	Size           string         `gorm:"not null" json:"size"`                                        // 规格名称（如 750ml）
	OriginalCost   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_cost"`  // 原价
	DiscountPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_price"` // 批发单价
	BottlesPerCase int            `gorm:"not null;default:0" json:"bottles_per_case"`                  // 每箱瓶数
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                           // 排序权重
	CreatedAt      time.Time      `json:"created_at"`                                                  // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (DealSize) TableName() string {
	return "deal_sizes"
}
