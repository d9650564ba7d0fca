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

func setupCommitmentRepoTest(t *testing.T) (*GormCommitmentRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:commitment_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.Commitment{}, &models.CommitmentSize{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return NewCommitmentRepository(db), db
}

func testMoney(value float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(value))
}

func createTestCommitment(t *testing.T, repo *GormCommitmentRepository, no string) *models.Commitment {
	t.Helper()
	commitment := &models.Commitment{
		CommitmentNo:  no,
		UserID:        1,
		DealID:        1,
		Status:        constants.CommitmentStatusPending,
		TotalPrice:    testMoney(600),
		PaymentStatus: constants.PaymentStatusPending,
	}
	sizes := []models.CommitmentSize{
		{Size: "750ml", Quantity: 60, PricePerUnit: testMoney(10), TotalPrice: testMoney(600)},
	}
	if err := repo.Create(commitment, sizes); err != nil {
		t.Fatalf("创建认购单失败: %v", err)
	}
	return commitment
}

func TestCommitmentCreateAndGet(t *testing.T) {
	repo, _ := setupCommitmentRepoTest(t)
	created := createTestCommitment(t, repo, "PF001")

	loaded, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected commitment to be found")
	}
	if len(loaded.Sizes) != 1 || loaded.Sizes[0].Quantity != 60 {
		t.Fatalf("expected size line of 60, got %+v", loaded.Sizes)
	}

	missing, err := repo.GetByID(9999)
	if err != nil {
		t.Fatalf("GetByID missing error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing commitment")
	}
}

func TestCommitmentUpdateStatusFromCAS(t *testing.T) {
	repo, _ := setupCommitmentRepoTest(t)
	created := createTestCommitment(t, repo, "PF002")

	rows, err := repo.UpdateStatusFrom(created.ID,
		constants.CommitmentStatusPending, constants.CommitmentStatusApproved, nil)
	if err != nil {
		t.Fatalf("UpdateStatusFrom error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}

	// 状态已翻转，再按 pending 前置条件更新应当失效
	rows, err = repo.UpdateStatusFrom(created.ID,
		constants.CommitmentStatusPending, constants.CommitmentStatusDeclined, nil)
	if err != nil {
		t.Fatalf("second UpdateStatusFrom error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows on stale precondition, got %d", rows)
	}

	loaded, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if loaded.Status != constants.CommitmentStatusApproved {
		t.Fatalf("expected approved status preserved, got %s", loaded.Status)
	}
}

func TestCommitmentUpdateWithVersion(t *testing.T) {
	repo, _ := setupCommitmentRepoTest(t)
	created := createTestCommitment(t, repo, "PF003")

	rows, err := repo.UpdateWithVersion(created.ID, created.LockVersion, map[string]interface{}{
		"total_price": testMoney(480),
	})
	if err != nil {
		t.Fatalf("UpdateWithVersion error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}

	// 版本号已自增，旧版本号再次更新应当冲突
	rows, err = repo.UpdateWithVersion(created.ID, created.LockVersion, map[string]interface{}{
		"total_price": testMoney(500),
	})
	if err != nil {
		t.Fatalf("stale UpdateWithVersion error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows on stale version, got %d", rows)
	}

	loaded, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !loaded.TotalPrice.Decimal.Equal(decimal.NewFromInt(480)) {
		t.Fatalf("expected total 480, got %s", loaded.TotalPrice.Decimal.String())
	}
	if loaded.LockVersion != created.LockVersion+1 {
		t.Fatalf("expected lock version bumped once, got %d", loaded.LockVersion)
	}
}

func TestCommitmentReplaceSizes(t *testing.T) {
	repo, _ := setupCommitmentRepoTest(t)
	created := createTestCommitment(t, repo, "PF004")

	err := repo.ReplaceSizes(created.ID, []models.CommitmentSize{
		{Size: "1.5L", Quantity: 30, PricePerUnit: testMoney(54), TotalPrice: testMoney(1620)},
		{Size: "375ml", Quantity: 24, PricePerUnit: testMoney(14), TotalPrice: testMoney(336)},
	})
	if err != nil {
		t.Fatalf("ReplaceSizes error: %v", err)
	}

	loaded, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if len(loaded.Sizes) != 2 {
		t.Fatalf("expected 2 size lines, got %d", len(loaded.Sizes))
	}
	for _, size := range loaded.Sizes {
		if size.Size == "750ml" {
			t.Fatalf("expected old size line removed")
		}
	}
}

func TestCommitmentListAdminFilters(t *testing.T) {
	repo, db := setupCommitmentRepoTest(t)
	first := createTestCommitment(t, repo, "PF100")
	createTestCommitment(t, repo, "PF101")
	if err := db.Model(&models.Commitment{}).Where("id = ?", first.ID).
		Update("status", constants.CommitmentStatusApproved).Error; err != nil {
		t.Fatalf("更新状态失败: %v", err)
	}

	approved, total, err := repo.ListAdmin(CommitmentListFilter{Status: constants.CommitmentStatusApproved})
	if err != nil {
		t.Fatalf("ListAdmin error: %v", err)
	}
	if total != 1 || len(approved) != 1 || approved[0].ID != first.ID {
		t.Fatalf("expected only approved commitment, got total=%d rows=%d", total, len(approved))
	}

	byNo, total, err := repo.ListAdmin(CommitmentListFilter{CommitmentNo: "PF10"})
	if err != nil {
		t.Fatalf("ListAdmin by no error: %v", err)
	}
	if total != 2 || len(byNo) != 2 {
		t.Fatalf("expected both commitments by number prefix, got total=%d", total)
	}
}

func TestCommitmentListByUserScoped(t *testing.T) {
	repo, db := setupCommitmentRepoTest(t)
	mine := createTestCommitment(t, repo, "PF200")
	other := createTestCommitment(t, repo, "PF201")
	if err := db.Model(&models.Commitment{}).Where("id = ?", other.ID).
		Update("user_id", 2).Error; err != nil {
		t.Fatalf("更新归属失败: %v", err)
	}

	rows, total, err := repo.ListByUser(CommitmentListFilter{UserID: 1})
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ID != mine.ID {
		t.Fatalf("expected only own commitment, got total=%d", total)
	}
}
