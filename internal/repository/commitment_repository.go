package repository

import (
	"errors"

	"github.com/pifa-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommitmentRepository 认购单数据访问接口
type CommitmentRepository interface {
	Create(commitment *models.Commitment, sizes []models.CommitmentSize) error
	GetByID(id uint) (*models.Commitment, error)
	GetByIDForUpdate(id uint) (*models.Commitment, error)
	GetByIDAndUser(id, userID uint) (*models.Commitment, error)
	ListByUser(filter CommitmentListFilter) ([]models.Commitment, int64, error)
	ListAdmin(filter CommitmentListFilter) ([]models.Commitment, int64, error)
	ReplaceSizes(commitmentID uint, sizes []models.CommitmentSize) error
	UpdateWithVersion(id uint, expectedVersion uint, updates map[string]interface{}) (int64, error)
	UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error)
	UpdatePaymentStatus(id uint, paymentStatus string) error
	WithTx(tx *gorm.DB) *GormCommitmentRepository
}

// GormCommitmentRepository GORM 实现
type GormCommitmentRepository struct {
	db *gorm.DB
}

// NewCommitmentRepository 创建认购单仓库
func NewCommitmentRepository(db *gorm.DB) *GormCommitmentRepository {
	return &GormCommitmentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCommitmentRepository) WithTx(tx *gorm.DB) *GormCommitmentRepository {
	if tx == nil {
		return r
	}
	return &GormCommitmentRepository{db: tx}
}

func (r *GormCommitmentRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("AppliedTier")
}

// Create 创建认购单与规格行
func (r *GormCommitmentRepository) Create(commitment *models.Commitment, sizes []models.CommitmentSize) error {
	if err := r.db.Create(commitment).Error; err != nil {
		return err
	}
	for i := range sizes {
		sizes[i].CommitmentID = commitment.ID
	}
	if len(sizes) > 0 {
		if err := r.db.Create(&sizes).Error; err != nil {
			return err
		}
		commitment.Sizes = sizes
	}
	return nil
}

// GetByID 根据 ID 获取认购单
func (r *GormCommitmentRepository) GetByID(id uint) (*models.Commitment, error) {
	var commitment models.Commitment
	if err := r.withDetail(r.db).First(&commitment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &commitment, nil
}

// GetByIDForUpdate 行锁获取认购单（事务内使用）
func (r *GormCommitmentRepository) GetByIDForUpdate(id uint) (*models.Commitment, error) {
	var commitment models.Commitment
	if err := r.withDetail(r.db.Clauses(clause.Locking{Strength: "UPDATE"})).
		First(&commitment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &commitment, nil
}

// GetByIDAndUser 获取会员自己的认购单
func (r *GormCommitmentRepository) GetByIDAndUser(id, userID uint) (*models.Commitment, error) {
	var commitment models.Commitment
	if err := r.withDetail(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		First(&commitment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &commitment, nil
}

func (r *GormCommitmentRepository) applyListFilter(query *gorm.DB, filter CommitmentListFilter) *gorm.DB {
	if filter.DealID != 0 {
		query = query.Where("deal_id = ?", filter.DealID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.CommitmentNo != "" {
		query = query.Where("commitment_no LIKE ?", "%"+filter.CommitmentNo+"%")
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// ListByUser 会员端认购单列表
func (r *GormCommitmentRepository) ListByUser(filter CommitmentListFilter) ([]models.Commitment, int64, error) {
	var commitments []models.Commitment
	query := r.db.Model(&models.Commitment{}).Where("user_id = ?", filter.UserID)
	query = r.applyListFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := r.withDetail(query).Order("id desc").Find(&commitments).Error; err != nil {
		return nil, 0, err
	}
	return commitments, total, nil
}

// ListAdmin 管理端认购单列表
func (r *GormCommitmentRepository) ListAdmin(filter CommitmentListFilter) ([]models.Commitment, int64, error) {
	var commitments []models.Commitment
	query := r.db.Model(&models.Commitment{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	query = r.applyListFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := r.withDetail(query.Preload("User")).Order("id desc").Find(&commitments).Error; err != nil {
		return nil, 0, err
	}
	return commitments, total, nil
}

// ReplaceSizes 整体替换认购单规格行
func (r *GormCommitmentRepository) ReplaceSizes(commitmentID uint, sizes []models.CommitmentSize) error {
	if err := r.db.Unscoped().Where("commitment_id = ?", commitmentID).
		Delete(&models.CommitmentSize{}).Error; err != nil {
		return err
	}
	for i := range sizes {
		sizes[i].ID = 0
		sizes[i].CommitmentID = commitmentID
	}
	if len(sizes) == 0 {
		return nil
	}
	return r.db.Create(&sizes).Error
}

// UpdateWithVersion 乐观锁更新：仅在版本号未变时生效，返回影响行数
func (r *GormCommitmentRepository) UpdateWithVersion(id uint, expectedVersion uint, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["lock_version"] = gorm.Expr("lock_version + 1")
	result := r.db.Model(&models.Commitment{}).
		Where("id = ? AND lock_version = ?", id, expectedVersion).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// UpdateStatusFrom 条件状态翻转：仅当当前状态等于 fromStatus 时生效，返回影响行数。
// 影响行数为 0 说明状态已被并发修改或已处于终态。
func (r *GormCommitmentRepository) UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	updates["lock_version"] = gorm.Expr("lock_version + 1")
	result := r.db.Model(&models.Commitment{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// UpdatePaymentStatus 更新支付状态
func (r *GormCommitmentRepository) UpdatePaymentStatus(id uint, paymentStatus string) error {
	return r.db.Model(&models.Commitment{}).Where("id = ?", id).
		Update("payment_status", paymentStatus).Error
}
