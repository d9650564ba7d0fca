package models

import (
	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", constants.UserRoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	// 创建默认管理员
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  username,
		Role:         constants.UserRoleAdmin,
		Status:       "active",
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}
