package models

import (
	"time"

	"gorm.io/gorm"
)

// CommitmentSize 认购单规格行表（同一认购单内每个规格至多一行，数量大于 0）
type CommitmentSize struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                        // 主键
	CommitmentID uint           `gorm:"index;not null" json:"commitment_id"`                         // 所属认购单ID
	Size         string         `gorm:"not null" json:"size"`                                        // 规格名称
	Quantity     int            `gorm:"not null" json:"quantity"`                                    // 数量
	PricePerUnit Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_per_unit"` // 折后单价
	TotalPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`    // 行小计
	CreatedAt    time.Time      `json:"created_at"`                                                  // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (CommitmentSize) TableName() string {
	return "commitment_sizes"
}
