package repository

import (
	"errors"
	"time"

	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DealRepository 批发活动数据访问接口
type DealRepository interface {
	Create(deal *models.Deal) error
	GetByID(id uint) (*models.Deal, error)
	GetByIDForUpdate(id uint) (*models.Deal, error)
	List(filter DealListFilter) ([]models.Deal, int64, error)
	Update(deal *models.Deal) error
	UpdateStatus(id uint, status string) error
	ReplaceSizes(dealID uint, sizes []models.DealSize) error
	ReplaceDiscountTiers(dealID uint, tiers []models.DealDiscountTier) error
	IncrementTotals(dealID uint, deltaSold int, deltaRevenue models.Money) error
	AppendNotificationHistory(dealID, userID uint, sentAt time.Time) error
	NotificationHistory(dealID uint) (map[uint][]models.DealNotification, error)
	ExpireDealsBefore(now time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormDealRepository
}

// GormDealRepository GORM 实现
type GormDealRepository struct {
	db *gorm.DB
}

// NewDealRepository 创建批发活动仓库
func NewDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDealRepository) WithTx(tx *gorm.DB) *GormDealRepository {
	if tx == nil {
		return r
	}
	return &GormDealRepository{db: tx}
}

func (r *GormDealRepository) withCatalogue(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("DiscountTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("tier_quantity asc")
		})
}

// Create 创建活动（含规格与折扣阶梯）
func (r *GormDealRepository) Create(deal *models.Deal) error {
	return r.db.Create(deal).Error
}

// GetByID 根据 ID 获取活动（含规格与折扣阶梯）
func (r *GormDealRepository) GetByID(id uint) (*models.Deal, error) {
	var deal models.Deal
	if err := r.withCatalogue(r.db).First(&deal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

// GetByIDForUpdate 行锁获取活动（事务内使用）
func (r *GormDealRepository) GetByIDForUpdate(id uint) (*models.Deal, error) {
	var deal models.Deal
	if err := r.withCatalogue(r.db.Clauses(clause.Locking{Strength: "UPDATE"})).
		First(&deal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

// List 活动列表
func (r *GormDealRepository) List(filter DealListFilter) ([]models.Deal, int64, error) {
	var deals []models.Deal
	query := r.db.Model(&models.Deal{})

	if filter.DistributorID != 0 {
		query = query.Where("distributor_id = ?", filter.DistributorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OnlyActive {
		query = query.Where("status = ?", constants.DealStatusActive)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := r.withCatalogue(query).Order("id desc").Find(&deals).Error; err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

// Update 更新活动基础字段
func (r *GormDealRepository) Update(deal *models.Deal) error {
	return r.db.Model(&models.Deal{}).Where("id = ?", deal.ID).Updates(map[string]interface{}{
		"name":                 deal.Name,
		"description":          deal.Description,
		"status":               deal.Status,
		"min_qty_for_discount": deal.MinQtyForDiscount,
		"starts_at":            deal.StartsAt,
		"ends_at":              deal.EndsAt,
	}).Error
}

// UpdateStatus 更新活动状态
func (r *GormDealRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Deal{}).Where("id = ?", id).Update("status", status).Error
}

// ReplaceSizes 整体替换活动规格
func (r *GormDealRepository) ReplaceSizes(dealID uint, sizes []models.DealSize) error {
	if err := r.db.Where("deal_id = ?", dealID).Delete(&models.DealSize{}).Error; err != nil {
		return err
	}
	for i := range sizes {
		sizes[i].ID = 0
		sizes[i].DealID = dealID
	}
	if len(sizes) == 0 {
		return nil
	}
	return r.db.Create(&sizes).Error
}

// ReplaceDiscountTiers 整体替换折扣阶梯
func (r *GormDealRepository) ReplaceDiscountTiers(dealID uint, tiers []models.DealDiscountTier) error {
	if err := r.db.Where("deal_id = ?", dealID).Delete(&models.DealDiscountTier{}).Error; err != nil {
		return err
	}
	for i := range tiers {
		tiers[i].ID = 0
		tiers[i].DealID = dealID
	}
	if len(tiers) == 0 {
		return nil
	}
	return r.db.Create(&tiers).Error
}

// IncrementTotals 原子累加活动累计数量与金额（数据库层自增，避免读改写竞态）
func (r *GormDealRepository) IncrementTotals(dealID uint, deltaSold int, deltaRevenue models.Money) error {
	return r.db.Model(&models.Deal{}).Where("id = ?", dealID).Updates(map[string]interface{}{
		"total_sold":    gorm.Expr("total_sold + ?", deltaSold),
		"total_revenue": gorm.Expr("total_revenue + ?", deltaRevenue.Decimal),
	}).Error
}

// AppendNotificationHistory 追加活动通知历史（只增不删）
func (r *GormDealRepository) AppendNotificationHistory(dealID, userID uint, sentAt time.Time) error {
	return r.db.Create(&models.DealNotification{
		DealID: dealID,
		UserID: userID,
		SentAt: sentAt,
	}).Error
}

// NotificationHistory 按用户聚合活动通知历史
func (r *GormDealRepository) NotificationHistory(dealID uint) (map[uint][]models.DealNotification, error) {
	var rows []models.DealNotification
	if err := r.db.Where("deal_id = ?", dealID).Order("sent_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	history := make(map[uint][]models.DealNotification, len(rows))
	for _, row := range rows {
		history[row.UserID] = append(history[row.UserID], row)
	}
	return history, nil
}

// ExpireDealsBefore 将已过结束时间的活动置为 inactive，返回处理条数
func (r *GormDealRepository) ExpireDealsBefore(now time.Time) (int64, error) {
	result := r.db.Model(&models.Deal{}).
		Where("status = ? AND ends_at IS NOT NULL AND ends_at < ?", constants.DealStatusActive, now).
		Update("status", constants.DealStatusInactive)
	return result.RowsAffected, result.Error
}
