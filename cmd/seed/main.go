package main

import (
	"time"

	"github.com/pifa-next/internal/config"
	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 演示账号
	users := []struct {
		username string
		password string
		role     string
		display  string
		phone    string
		email    string
	}{
		{"distributor", "dist123456", constants.UserRoleDistributor, "演示分销商", "13800000001", "distributor@example.com"},
		{"member", "member123456", constants.UserRoleMember, "演示会员", "13800000002", "member@example.com"},
	}
	userIDs := map[string]uint{}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("username = ?", u.username).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.username)
			userIDs[u.username] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password: %v", err)
		}
		user := models.User{
			Username:     u.username,
			PasswordHash: string(hash),
			DisplayName:  u.display,
			Role:         u.role,
			Phone:        u.phone,
			Email:        u.email,
			Status:       "active",
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.username, err)
			continue
		}
		stdLog.Printf("Created user: %s (%s)", u.username, u.role)
		userIDs[u.username] = user.ID
	}

	// 演示批发活动：三个规格 + 两级折扣阶梯
	var existingDeal models.Deal
	if err := models.DB.Where("name = ?", "2019 勃艮第红葡萄酒团购").First(&existingDeal).Error; err == nil {
		stdLog.Printf("Demo deal already exists: %d", existingDeal.ID)
		return
	}

	endsAt := time.Now().AddDate(0, 1, 0)
	deal := models.Deal{
		Name:              "2019 勃艮第红葡萄酒团购",
		Description:       "整箱起订，按总瓶数阶梯折扣",
		DistributorID:     userIDs["distributor"],
		Status:            constants.DealStatusActive,
		MinQtyForDiscount: 12,
		EndsAt:            &endsAt,
		Sizes: []models.DealSize{
			{
				Size:           "750ml",
				OriginalCost:   models.NewMoneyFromDecimal(decimal.NewFromFloat(32.00)),
				DiscountPrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(25.50)),
				BottlesPerCase: 12,
				SortOrder:      1,
			},
			{
				Size:           "1.5L",
				OriginalCost:   models.NewMoneyFromDecimal(decimal.NewFromFloat(68.00)),
				DiscountPrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(54.00)),
				BottlesPerCase: 6,
				SortOrder:      2,
			},
			{
				Size:           "375ml",
				OriginalCost:   models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
				DiscountPrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(14.00)),
				BottlesPerCase: 24,
				SortOrder:      3,
			},
		},
		DiscountTiers: []models.DealDiscountTier{
			{
				TierQuantity:        24,
				TierDiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromFloat(5.00)),
			},
			{
				TierQuantity:        60,
				TierDiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
			},
		},
	}
	if err := models.DB.Create(&deal).Error; err != nil {
		stdLog.Fatalf("Failed to create demo deal: %v", err)
	}
	stdLog.Printf("Created demo deal: %d", deal.ID)
}
