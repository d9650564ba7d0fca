package models

import (
	"time"

	"gorm.io/gorm"
)

// DealDiscountTier 批发活动折扣阶梯表
//
// 同一活动内按 tier_quantity 升序排列，数量阈值与折扣比例均须严格递增，
// 且每个阈值须大于活动的最低起订量（在活动创建/更新时校验）。
type DealDiscountTier struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                              // 主键
	DealID              uint           `gorm:"index;not null" json:"deal_id"`                                     // 所属活动ID
	TierQuantity        int            `gorm:"not null" json:"tier_quantity"`                                     // 数量阈值
	TierDiscountPercent Money          `gorm:"type:decimal(10,2);not null;default:0" json:"tier_discount_percent"` // 折扣百分比（如 10 表示 9 折）
	CreatedAt           time.Time      `json:"created_at"`                                                        // 创建时间
	UpdatedAt           time.Time      `json:"updated_at"`                                                        // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                                    // 软删除时间
}

// TableName 指定表名
func (DealDiscountTier) TableName() string {
	return "deal_discount_tiers"
}
