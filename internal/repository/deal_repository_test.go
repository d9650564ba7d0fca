package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDealRepoTest(t *testing.T) (*GormDealRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:deal_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.Deal{}, &models.DealSize{}, &models.DealDiscountTier{}, &models.DealNotification{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return NewDealRepository(db), db
}

func createTestDeal(t *testing.T, repo *GormDealRepository, name string) *models.Deal {
	t.Helper()
	deal := &models.Deal{
		Name:              name,
		DistributorID:     1,
		Status:            constants.DealStatusActive,
		MinQtyForDiscount: 12,
		Sizes: []models.DealSize{
			{Size: "1.5L", DiscountPrice: testMoney(54), SortOrder: 2},
			{Size: "750ml", DiscountPrice: testMoney(25.50), SortOrder: 1},
		},
		DiscountTiers: []models.DealDiscountTier{
			{TierQuantity: 60, TierDiscountPercent: testMoney(10)},
			{TierQuantity: 24, TierDiscountPercent: testMoney(5)},
		},
	}
	if err := repo.Create(deal); err != nil {
		t.Fatalf("创建活动失败: %v", err)
	}
	return deal
}

func TestDealGetByIDOrdersCatalogue(t *testing.T) {
	repo, _ := setupDealRepoTest(t)
	deal := createTestDeal(t, repo, "排序校验")

	loaded, err := repo.GetByID(deal.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected deal to be found")
	}
	// 规格按 sort_order、阶梯按 tier_quantity 升序
	if loaded.Sizes[0].Size != "750ml" || loaded.Sizes[1].Size != "1.5L" {
		t.Fatalf("expected sizes ordered by sort_order, got %+v", loaded.Sizes)
	}
	if loaded.DiscountTiers[0].TierQuantity != 24 || loaded.DiscountTiers[1].TierQuantity != 60 {
		t.Fatalf("expected tiers ordered by quantity, got %+v", loaded.DiscountTiers)
	}
}

func TestDealIncrementTotals(t *testing.T) {
	repo, db := setupDealRepoTest(t)
	deal := createTestDeal(t, repo, "台账累加")

	if err := repo.IncrementTotals(deal.ID, 60, testMoney(600)); err != nil {
		t.Fatalf("IncrementTotals error: %v", err)
	}
	if err := repo.IncrementTotals(deal.ID, 90, testMoney(900)); err != nil {
		t.Fatalf("second IncrementTotals error: %v", err)
	}

	var loaded models.Deal
	if err := db.First(&loaded, deal.ID).Error; err != nil {
		t.Fatalf("加载活动失败: %v", err)
	}
	if loaded.TotalSold != 150 {
		t.Fatalf("expected total sold 150, got %d", loaded.TotalSold)
	}
	if !loaded.TotalRevenue.Decimal.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected total revenue 1500, got %s", loaded.TotalRevenue.Decimal.String())
	}
}

func TestDealNotificationHistory(t *testing.T) {
	repo, _ := setupDealRepoTest(t)
	deal := createTestDeal(t, repo, "通知历史")

	base := time.Now().Truncate(time.Second)
	if err := repo.AppendNotificationHistory(deal.ID, 7, base); err != nil {
		t.Fatalf("AppendNotificationHistory error: %v", err)
	}
	if err := repo.AppendNotificationHistory(deal.ID, 7, base.Add(time.Minute)); err != nil {
		t.Fatalf("second AppendNotificationHistory error: %v", err)
	}
	if err := repo.AppendNotificationHistory(deal.ID, 8, base.Add(2*time.Minute)); err != nil {
		t.Fatalf("third AppendNotificationHistory error: %v", err)
	}

	history, err := repo.NotificationHistory(deal.ID)
	if err != nil {
		t.Fatalf("NotificationHistory error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected history for 2 users, got %d", len(history))
	}
	if len(history[7]) != 2 || len(history[8]) != 1 {
		t.Fatalf("expected grouped history 2/1, got %d/%d", len(history[7]), len(history[8]))
	}
	if !history[7][0].SentAt.Before(history[7][1].SentAt) {
		t.Fatalf("expected history ordered by sent_at")
	}
}

func TestDealReplaceDiscountTiers(t *testing.T) {
	repo, _ := setupDealRepoTest(t)
	deal := createTestDeal(t, repo, "阶梯替换")

	err := repo.ReplaceDiscountTiers(deal.ID, []models.DealDiscountTier{
		{TierQuantity: 36, TierDiscountPercent: testMoney(8)},
	})
	if err != nil {
		t.Fatalf("ReplaceDiscountTiers error: %v", err)
	}

	loaded, err := repo.GetByID(deal.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if len(loaded.DiscountTiers) != 1 || loaded.DiscountTiers[0].TierQuantity != 36 {
		t.Fatalf("expected single replaced tier, got %+v", loaded.DiscountTiers)
	}
}

func TestDealListFilters(t *testing.T) {
	repo, db := setupDealRepoTest(t)
	active := createTestDeal(t, repo, "进行中的团购")
	inactive := createTestDeal(t, repo, "已下架的团购")
	if err := db.Model(&models.Deal{}).Where("id = ?", inactive.ID).
		Update("status", constants.DealStatusInactive).Error; err != nil {
		t.Fatalf("更新状态失败: %v", err)
	}

	deals, total, err := repo.List(DealListFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(deals) != 1 || deals[0].ID != active.ID {
		t.Fatalf("expected only active deal, got total=%d", total)
	}

	deals, total, err = repo.List(DealListFilter{Search: "下架"})
	if err != nil {
		t.Fatalf("List search error: %v", err)
	}
	if total != 1 || deals[0].ID != inactive.ID {
		t.Fatalf("expected search to match inactive deal, got total=%d", total)
	}
}

func TestDealExpireDealsBefore(t *testing.T) {
	repo, db := setupDealRepoTest(t)
	deal := createTestDeal(t, repo, "到期下架")
	past := time.Now().Add(-time.Hour)
	if err := db.Model(&models.Deal{}).Where("id = ?", deal.ID).
		Update("ends_at", past).Error; err != nil {
		t.Fatalf("更新结束时间失败: %v", err)
	}
	keep := createTestDeal(t, repo, "无期限保留")

	count, err := repo.ExpireDealsBefore(time.Now())
	if err != nil {
		t.Fatalf("ExpireDealsBefore error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 expired, got %d", count)
	}

	var status string
	if err := db.Model(&models.Deal{}).Where("id = ?", keep.ID).
		Pluck("status", &status).Error; err != nil {
		t.Fatalf("查询状态失败: %v", err)
	}
	if status != constants.DealStatusActive {
		t.Fatalf("expected open-ended deal untouched, got %s", status)
	}
}
