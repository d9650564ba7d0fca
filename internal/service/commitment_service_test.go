package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type commitmentTestEnv struct {
	db      *gorm.DB
	service *CommitmentService
}

func setupCommitmentTest(t *testing.T) *commitmentTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:commitment_svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Deal{},
		&models.DealSize{},
		&models.DealDiscountTier{},
		&models.DealNotification{},
		&models.Commitment{},
		&models.CommitmentSize{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	models.DB = db

	commitmentRepo := repository.NewCommitmentRepository(db)
	dealRepo := repository.NewDealRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationService := NewNotificationService(repository.NewNotificationRepository(db))

	return &commitmentTestEnv{
		db:      db,
		service: NewCommitmentService(commitmentRepo, dealRepo, userRepo, nil, notificationService, nil, nil),
	}
}

func (env *commitmentTestEnv) createUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       "active",
	}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

func (env *commitmentTestEnv) createDeal(t *testing.T, distributorID uint, minQty int, tiers ...models.DealDiscountTier) *models.Deal {
	t.Helper()
	deal := &models.Deal{
		Name:              "测试批发活动",
		DistributorID:     distributorID,
		Status:            constants.DealStatusActive,
		MinQtyForDiscount: minQty,
		Sizes: []models.DealSize{
			{Size: "Large", DiscountPrice: money(10), SortOrder: 1},
			{Size: "Medium", DiscountPrice: money(8), SortOrder: 2},
		},
		DiscountTiers: tiers,
	}
	if err := env.db.Create(deal).Error; err != nil {
		t.Fatalf("创建活动失败: %v", err)
	}
	return deal
}

func (env *commitmentTestEnv) reloadDeal(t *testing.T, id uint) *models.Deal {
	t.Helper()
	var deal models.Deal
	if err := env.db.First(&deal, id).Error; err != nil {
		t.Fatalf("加载活动失败: %v", err)
	}
	return &deal
}

func TestCreateCommitmentAppliesTier(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist1", constants.UserRoleDistributor)
	member := env.createUser(t, "member1", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50,
		models.DealDiscountTier{TierQuantity: 100, TierDiscountPercent: money(10)})

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 120}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}
	if commitment.Status != constants.CommitmentStatusPending {
		t.Fatalf("expected pending status, got %s", commitment.Status)
	}
	if commitment.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("expected pending payment status, got %s", commitment.PaymentStatus)
	}
	if !commitment.TotalPrice.Decimal.Equal(decimal.NewFromInt(1080)) {
		t.Fatalf("expected total 1080, got %s", commitment.TotalPrice.Decimal.String())
	}
	if commitment.AppliedTierID == nil {
		t.Fatalf("expected applied tier to be recorded")
	}
	if len(commitment.Sizes) != 1 || commitment.Sizes[0].Quantity != 120 {
		t.Fatalf("expected single size line of 120, got %+v", commitment.Sizes)
	}
	if commitment.CommitmentNo == "" {
		t.Fatalf("expected commitment number to be generated")
	}

	var notified int64
	if err := env.db.Model(&models.Notification{}).Where("recipient_id = ?", member.ID).Count(&notified).Error; err != nil {
		t.Fatalf("统计通知失败: %v", err)
	}
	if notified == 0 {
		t.Fatalf("expected member notification to be created")
	}
}

func TestCreateCommitmentQuantityOnly(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist2", constants.UserRoleDistributor)
	member := env.createUser(t, "member2", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	// 未给规格行时按排序最靠前的规格整单认购
	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID:   deal.ID,
		UserID:   member.ID,
		Quantity: 60,
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}
	if !commitment.TotalPrice.Decimal.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected total 600, got %s", commitment.TotalPrice.Decimal.String())
	}
	if len(commitment.Sizes) != 1 || commitment.Sizes[0].Size != "Large" {
		t.Fatalf("expected primary size Large, got %+v", commitment.Sizes)
	}
}

func TestCreateCommitmentInactiveDeal(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist3", constants.UserRoleDistributor)
	member := env.createUser(t, "member3", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 10)
	if err := env.db.Model(&models.Deal{}).Where("id = ?", deal.ID).
		Update("status", constants.DealStatusInactive).Error; err != nil {
		t.Fatalf("更新活动状态失败: %v", err)
	}

	_, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 20}},
	})
	if !errors.Is(err, ErrDealNotActive) {
		t.Fatalf("expected ErrDealNotActive, got %v", err)
	}
}

func TestCreateCommitmentExpiredDeal(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist4", constants.UserRoleDistributor)
	member := env.createUser(t, "member4", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 10)
	past := time.Now().Add(-time.Hour)
	if err := env.db.Model(&models.Deal{}).Where("id = ?", deal.ID).
		Update("ends_at", past).Error; err != nil {
		t.Fatalf("更新活动结束时间失败: %v", err)
	}

	_, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 20}},
	})
	if !errors.Is(err, ErrDealNotActive) {
		t.Fatalf("expected ErrDealNotActive, got %v", err)
	}
}

func TestReviseCommitmentSizes(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist5", constants.UserRoleDistributor)
	member := env.createUser(t, "member5", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50,
		models.DealDiscountTier{TierQuantity: 100, TierDiscountPercent: money(10)})

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 120}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	// 数量归零的规格整行删除，剩余行重新计价
	result, err := env.service.ReviseCommitmentSizes(commitment.ID, member.ID, []SizeLine{
		{Size: "Large", Quantity: 0},
		{Size: "Medium", Quantity: 80},
	})
	if err != nil {
		t.Fatalf("ReviseCommitmentSizes error: %v", err)
	}
	if result.Cancelled {
		t.Fatalf("expected revision, not cancellation")
	}
	revised := result.Commitment
	if !revised.TotalPrice.Decimal.Equal(decimal.NewFromInt(640)) {
		t.Fatalf("expected total 640, got %s", revised.TotalPrice.Decimal.String())
	}
	if revised.AppliedTierID != nil {
		t.Fatalf("expected tier cleared after revision, got %v", *revised.AppliedTierID)
	}
	if len(revised.Sizes) != 1 || revised.Sizes[0].Size != "Medium" || revised.Sizes[0].Quantity != 80 {
		t.Fatalf("expected single Medium line of 80, got %+v", revised.Sizes)
	}
}

func TestReviseCommitmentAllZeroCancels(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist6", constants.UserRoleDistributor)
	member := env.createUser(t, "member6", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 60}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	result, err := env.service.ReviseCommitmentSizes(commitment.ID, member.ID, []SizeLine{
		{Size: "Large", Quantity: 0},
	})
	if err != nil {
		t.Fatalf("ReviseCommitmentSizes error: %v", err)
	}
	if !result.Cancelled {
		t.Fatalf("expected cancellation")
	}
	if result.Commitment.Status != constants.CommitmentStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", result.Commitment.Status)
	}
	// 取消不重算价格，总价保留最后一次有效值
	if !result.Commitment.TotalPrice.Decimal.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected total retained at 600, got %s", result.Commitment.TotalPrice.Decimal.String())
	}
}

func TestReviseCommitmentNotOwner(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist7", constants.UserRoleDistributor)
	member := env.createUser(t, "member7", constants.UserRoleMember)
	other := env.createUser(t, "member7b", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 60}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	_, err = env.service.ReviseCommitmentSizes(commitment.ID, other.ID, []SizeLine{
		{Size: "Large", Quantity: 70},
	})
	if !errors.Is(err, ErrCommitmentNotOwner) {
		t.Fatalf("expected ErrCommitmentNotOwner, got %v", err)
	}
}

func TestReviseDeclinedCommitmentRejected(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist8", constants.UserRoleDistributor)
	member := env.createUser(t, "member8", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 60}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}
	if _, err := env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID: commitment.ID,
		Status:       constants.CommitmentStatusDeclined,
		ActorID:      distributor.ID,
	}); err != nil {
		t.Fatalf("UpdateCommitmentStatus error: %v", err)
	}

	_, err = env.service.ReviseCommitmentSizes(commitment.ID, member.ID, []SizeLine{
		{Size: "Large", Quantity: 70},
	})
	if !errors.Is(err, ErrCommitmentStatusInvalid) {
		t.Fatalf("expected ErrCommitmentStatusInvalid, got %v", err)
	}

	reloaded, err := env.service.GetCommitment(commitment.ID)
	if err != nil {
		t.Fatalf("GetCommitment error: %v", err)
	}
	if reloaded.Status != constants.CommitmentStatusDeclined {
		t.Fatalf("expected status unchanged, got %s", reloaded.Status)
	}
	if !reloaded.TotalPrice.Decimal.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected total unchanged at 600, got %s", reloaded.TotalPrice.Decimal.String())
	}
}

func TestApproveCommitmentUpdatesDealTotals(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist9", constants.UserRoleDistributor)
	member := env.createUser(t, "member9", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 60}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	approved, err := env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID:        commitment.ID,
		Status:              constants.CommitmentStatusApproved,
		DistributorResponse: "下周发货",
		ActorID:             distributor.ID,
	})
	if err != nil {
		t.Fatalf("UpdateCommitmentStatus error: %v", err)
	}
	if approved.Status != constants.CommitmentStatusApproved {
		t.Fatalf("expected approved status, got %s", approved.Status)
	}
	if approved.RespondedAt == nil {
		t.Fatalf("expected responded_at to be set")
	}
	if approved.DistributorResponse != "下周发货" {
		t.Fatalf("expected distributor response saved, got %q", approved.DistributorResponse)
	}

	reloaded := env.reloadDeal(t, deal.ID)
	if reloaded.TotalSold != 60 {
		t.Fatalf("expected total sold 60, got %d", reloaded.TotalSold)
	}
	if !reloaded.TotalRevenue.Decimal.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected total revenue 600, got %s", reloaded.TotalRevenue.Decimal.String())
	}
}

func TestApproveCommitmentWithModification(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist10", constants.UserRoleDistributor)
	member := env.createUser(t, "member10", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 100}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	qty := 90
	total := money(900) // 90 × 10
	approved, err := env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID:       commitment.ID,
		Status:             constants.CommitmentStatusApproved,
		ModifiedQuantity:   &qty,
		ModifiedTotalPrice: &total,
		ActorID:            distributor.ID,
	})
	if err != nil {
		t.Fatalf("UpdateCommitmentStatus error: %v", err)
	}
	if !approved.ModifiedByDistributor {
		t.Fatalf("expected modified_by_distributor flag")
	}
	if approved.ModifiedQuantity == nil || *approved.ModifiedQuantity != 90 {
		t.Fatalf("expected modified quantity 90, got %v", approved.ModifiedQuantity)
	}
	if !approved.FinalTotalPrice().Decimal.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected final total 900, got %s", approved.FinalTotalPrice().Decimal.String())
	}
	if approved.FinalQuantity() != 90 {
		t.Fatalf("expected final quantity 90, got %d", approved.FinalQuantity())
	}

	// 台账按改后数量金额入账
	reloaded := env.reloadDeal(t, deal.ID)
	if reloaded.TotalSold != 90 {
		t.Fatalf("expected total sold 90, got %d", reloaded.TotalSold)
	}
	if !reloaded.TotalRevenue.Decimal.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected total revenue 900, got %s", reloaded.TotalRevenue.Decimal.String())
	}

	var history int64
	if err := env.db.Model(&models.DealNotification{}).
		Where("deal_id = ? AND user_id = ?", deal.ID, member.ID).Count(&history).Error; err != nil {
		t.Fatalf("统计通知历史失败: %v", err)
	}
	if history != 1 {
		t.Fatalf("expected one notification history row, got %d", history)
	}
}

func TestApproveCommitmentPriceMismatch(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist11", constants.UserRoleDistributor)
	member := env.createUser(t, "member11", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 100}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	qty := 90
	wrong := money(850)
	_, err = env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID:       commitment.ID,
		Status:             constants.CommitmentStatusApproved,
		ModifiedQuantity:   &qty,
		ModifiedTotalPrice: &wrong,
		ActorID:            distributor.ID,
	})
	if !errors.Is(err, ErrPriceMismatch) {
		t.Fatalf("expected ErrPriceMismatch, got %v", err)
	}

	reloaded, err := env.service.GetCommitment(commitment.ID)
	if err != nil {
		t.Fatalf("GetCommitment error: %v", err)
	}
	if reloaded.Status != constants.CommitmentStatusPending {
		t.Fatalf("expected status still pending, got %s", reloaded.Status)
	}
	if env.reloadDeal(t, deal.ID).TotalSold != 0 {
		t.Fatalf("expected deal totals untouched")
	}
}

func TestApproveCommitmentModifiedBelowMinimum(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist12", constants.UserRoleDistributor)
	member := env.createUser(t, "member12", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 100}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	qty := 10
	_, err = env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID:     commitment.ID,
		Status:           constants.CommitmentStatusApproved,
		ModifiedQuantity: &qty,
		ActorID:          distributor.ID,
	})
	if !errors.Is(err, ErrBelowMinimumQuantity) {
		t.Fatalf("expected ErrBelowMinimumQuantity, got %v", err)
	}
}

func TestApproveCommitmentTwice(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist13", constants.UserRoleDistributor)
	member := env.createUser(t, "member13", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 60}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	if _, err := env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID: commitment.ID,
		Status:       constants.CommitmentStatusApproved,
		ActorID:      distributor.ID,
	}); err != nil {
		t.Fatalf("first approval error: %v", err)
	}

	_, err = env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID: commitment.ID,
		Status:       constants.CommitmentStatusApproved,
		ActorID:      distributor.ID,
	})
	if !errors.Is(err, ErrCommitmentStatusInvalid) {
		t.Fatalf("expected ErrCommitmentStatusInvalid, got %v", err)
	}

	// 重复通过不得二次入账
	reloaded := env.reloadDeal(t, deal.ID)
	if reloaded.TotalSold != 60 {
		t.Fatalf("expected total sold 60 after single approval, got %d", reloaded.TotalSold)
	}
}

func TestModifiedPriceWithoutQuantityRejected(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist14", constants.UserRoleDistributor)
	member := env.createUser(t, "member14", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 60}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	total := money(500)
	_, err = env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID:       commitment.ID,
		Status:             constants.CommitmentStatusApproved,
		ModifiedTotalPrice: &total,
		ActorID:            distributor.ID,
	})
	if !errors.Is(err, ErrPriceMismatch) {
		t.Fatalf("expected ErrPriceMismatch, got %v", err)
	}
}

func TestMarkCommitmentPaymentStatus(t *testing.T) {
	env := setupCommitmentTest(t)
	distributor := env.createUser(t, "dist15", constants.UserRoleDistributor)
	member := env.createUser(t, "member15", constants.UserRoleMember)
	deal := env.createDeal(t, distributor.ID, 50)

	commitment, err := env.service.CreateCommitment(CreateCommitmentInput{
		DealID: deal.ID,
		UserID: member.ID,
		Lines:  []SizeLine{{Size: "Large", Quantity: 60}},
	})
	if err != nil {
		t.Fatalf("CreateCommitment error: %v", err)
	}

	// 未通过的认购单不允许标记支付状态
	if _, err := env.service.MarkCommitmentPaymentStatus(commitment.ID, constants.PaymentStatusPaid); !errors.Is(err, ErrCommitmentStatusInvalid) {
		t.Fatalf("expected ErrCommitmentStatusInvalid on pending commitment, got %v", err)
	}

	if _, err := env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID: commitment.ID,
		Status:       constants.CommitmentStatusApproved,
		ActorID:      distributor.ID,
	}); err != nil {
		t.Fatalf("UpdateCommitmentStatus error: %v", err)
	}

	paid, err := env.service.MarkCommitmentPaymentStatus(commitment.ID, constants.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("MarkCommitmentPaymentStatus error: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid payment status, got %s", paid.PaymentStatus)
	}

	if _, err := env.service.MarkCommitmentPaymentStatus(commitment.ID, "refunded"); !errors.Is(err, ErrCommitmentStatusInvalid) {
		t.Fatalf("expected ErrCommitmentStatusInvalid for unknown payment status, got %v", err)
	}
}

func TestUpdateCommitmentStatusNotFound(t *testing.T) {
	env := setupCommitmentTest(t)
	_, err := env.service.UpdateCommitmentStatus(UpdateCommitmentStatusInput{
		CommitmentID: 9999,
		Status:       constants.CommitmentStatusApproved,
	})
	if !errors.Is(err, ErrCommitmentNotFound) {
		t.Fatalf("expected ErrCommitmentNotFound, got %v", err)
	}
}
