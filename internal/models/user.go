package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（会员 / 分销商 / 管理员共用一张表，按 role 区分）
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // 主键
	Username     string         `gorm:"uniqueIndex;not null" json:"username"` // 登录账号
	Email        string         `gorm:"index" json:"email"`                   // 邮箱（邮件通知目标）
	Phone        string         `gorm:"index" json:"phone"`                   // 手机号（短信通知目标）
	PasswordHash string         `gorm:"not null" json:"-"`                    // 密码哈希（不返回给前端）
	DisplayName  string         `gorm:"default:''" json:"display_name"`       // 昵称
	Role         string         `gorm:"index;not null" json:"role"`           // 角色（member/distributor/admin）
	Locale       string         `gorm:"default:'zh-CN'" json:"locale"`        // 语言偏好
	Status       string         `gorm:"default:'active'" json:"status"`       // 账号状态
	LastLoginAt  *time.Time     `json:"last_login_at"`                        // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
