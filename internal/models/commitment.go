package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ModifiedSizeLine 分销商改量改价后的规格行快照
type ModifiedSizeLine struct {
	Size         string `json:"size"`           // 规格名称
	Quantity     int    `json:"quantity"`       // 数量
	PricePerUnit Money  `json:"price_per_unit"` // 单价
	TotalPrice   Money  `json:"total_price"`    // 行小计
}

// ModifiedSizeLineList 以 JSON 列存储的改量快照
type ModifiedSizeLineList []ModifiedSizeLine

// Value 实现 driver.Valuer 接口
func (l ModifiedSizeLineList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner 接口
func (l *ModifiedSizeLineList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Commitment 认购单表
type Commitment struct {
	ID                    uint                 `gorm:"primarykey" json:"id"`                                      // 主键
	CommitmentNo          string               `gorm:"uniqueIndex;not null" json:"commitment_no"`                 // 认购单编号
	UserID                uint                 `gorm:"index;not null" json:"user_id"`                             // 会员ID
	DealID                uint                 `gorm:"index;not null" json:"deal_id"`                             // 活动ID
	Status                string               `gorm:"index;not null" json:"status"`                              // 状态（pending/approved/declined/cancelled）
	TotalPrice            Money                `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`  // 折后总价
	AppliedTierID         *uint                `gorm:"index" json:"applied_tier_id,omitempty"`                    // 命中的折扣阶梯ID
	ModifiedByDistributor bool                 `gorm:"not null;default:false" json:"modified_by_distributor"`     // 分销商是否改量改价
	ModifiedQuantity      *int                 `json:"modified_quantity,omitempty"`                               // 分销商改后的总数量
	ModifiedTotalPrice    *Money               `gorm:"type:decimal(20,2)" json:"modified_total_price,omitempty"`  // 分销商改后的总价
	ModifiedSizes         ModifiedSizeLineList `gorm:"type:json" json:"modified_sizes,omitempty"`                 // 改量后的规格行快照
	DistributorResponse   string               `gorm:"type:text" json:"distributor_response,omitempty"`           // 分销商回复
	PaymentStatus         string               `gorm:"index;not null;default:'pending'" json:"payment_status"`    // 支付状态（pending/paid/failed）
	LockVersion           uint                 `gorm:"not null;default:0" json:"-"`                               // 乐观锁版本号
	RespondedAt           *time.Time           `gorm:"index" json:"responded_at"`                                 // 分销商处理时间
	CreatedAt             time.Time            `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt             time.Time            `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt             gorm.DeletedAt       `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Sizes       []CommitmentSize  `gorm:"foreignKey:CommitmentID" json:"sizes,omitempty"` // 规格行
	AppliedTier *DealDiscountTier `gorm:"foreignKey:AppliedTierID" json:"applied_tier,omitempty"`
	User        *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Deal        *Deal             `gorm:"foreignKey:DealID" json:"deal,omitempty"`
}

// TableName 指定表名
func (Commitment) TableName() string {
	return "commitments"
}

// TotalQuantity 规格行数量合计
func (c *Commitment) TotalQuantity() int {
	total := 0
	for i := range c.Sizes {
		total += c.Sizes[i].Quantity
	}
	return total
}

// FinalQuantity 最终结算数量（分销商改量优先）
func (c *Commitment) FinalQuantity() int {
	if c.ModifiedByDistributor && c.ModifiedQuantity != nil {
		return *c.ModifiedQuantity
	}
	return c.TotalQuantity()
}

// FinalTotalPrice 最终结算总价（分销商改价优先）
func (c *Commitment) FinalTotalPrice() Money {
	if c.ModifiedByDistributor && c.ModifiedTotalPrice != nil {
		return *c.ModifiedTotalPrice
	}
	return c.TotalPrice
}
