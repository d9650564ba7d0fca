package models

import (
	"time"

	"gorm.io/gorm"
)

// Deal 批发活动表
type Deal struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                       // 主键
	Name              string         `gorm:"not null" json:"name"`                                       // 活动名称
	Description       string         `gorm:"type:text" json:"description,omitempty"`                     // 活动描述
	DistributorID     uint           `gorm:"index;not null" json:"distributor_id"`                       // 发布者（分销商）ID
	Status            string         `gorm:"index;not null;default:'active'" json:"status"`              // 活动状态（active/inactive）
	MinQtyForDiscount int            `gorm:"not null;default:0" json:"min_qty_for_discount"`             // 最低起订量
	TotalSold         int64          `gorm:"not null;default:0" json:"total_sold"`                       // 累计售出数量（仅在认购单通过时累加）
	TotalRevenue      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_revenue"` // 累计成交金额
	StartsAt          *time.Time     `gorm:"index" json:"starts_at"`                                     // 开始时间
	EndsAt            *time.Time     `gorm:"index" json:"ends_at"`                                       // 结束时间（过期后巡检置为 inactive）
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	// 关联
	Sizes         []DealSize         `gorm:"foreignKey:DealID" json:"sizes,omitempty"`          // 规格列表
	DiscountTiers []DealDiscountTier `gorm:"foreignKey:DealID" json:"discount_tiers,omitempty"` // 折扣阶梯（按 tier_quantity 升序）
	Commitments   []Commitment       `gorm:"foreignKey:DealID" json:"commitments,omitempty"`    // 认购单反向集合
}

// TableName 指定表名
func (Deal) TableName() string {
	return "deals"
}

// IsActive 活动是否开放认购
func (d *Deal) IsActive(now time.Time) bool {
	if d.Status != "active" {
		return false
	}
	if d.EndsAt != nil && d.EndsAt.Before(now) {
		return false
	}
	return true
}

// FindSize 按规格名查找规格，不存在返回 nil
func (d *Deal) FindSize(size string) *DealSize {
	for i := range d.Sizes {
		if d.Sizes[i].Size == size {
			return &d.Sizes[i]
		}
	}
	return nil
}

// PrimarySize 返回排序最靠前的规格（分销商改量改价时的计价基准），无规格返回 nil
func (d *Deal) PrimarySize() *DealSize {
	if len(d.Sizes) == 0 {
		return nil
	}
	primary := &d.Sizes[0]
	for i := range d.Sizes {
		if d.Sizes[i].SortOrder < primary.SortOrder {
			primary = &d.Sizes[i]
		}
	}
	return primary
}
