package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pifa-next/internal/cache"
	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dealDetailCacheTTL = 5 * time.Minute

// DealService 批发活动服务
type DealService struct {
	dealRepo repository.DealRepository
}

// NewDealService 创建批发活动服务
func NewDealService(dealRepo repository.DealRepository) *DealService {
	return &DealService{dealRepo: dealRepo}
}

// DealSizeInput 活动规格输入
type DealSizeInput struct {
	Size           string       `json:"size"`
	OriginalCost   models.Money `json:"original_cost"`
	DiscountPrice  models.Money `json:"discount_price"`
	BottlesPerCase int          `json:"bottles_per_case"`
	SortOrder      int          `json:"sort_order"`
}

// DealTierInput 折扣阶梯输入
type DealTierInput struct {
	TierQuantity        int          `json:"tier_quantity"`
	TierDiscountPercent models.Money `json:"tier_discount_percent"`
}

// SaveDealInput 创建/更新活动输入
type SaveDealInput struct {
	Name              string
	Description       string
	DistributorID     uint
	Status            string
	MinQtyForDiscount int
	StartsAt          *time.Time
	EndsAt            *time.Time
	Sizes             []DealSizeInput
	DiscountTiers     []DealTierInput
}

// GetDeal 获取活动详情（带缓存）
func (s *DealService) GetDeal(ctx context.Context, id uint) (*models.Deal, error) {
	var cached models.Deal
	hit, err := cache.GetJSON(ctx, cache.DealDetailKey(id), &cached)
	if err != nil {
		logger.Warnw("deal_cache_read_failed", "deal_id", id, "error", err)
	}
	if hit {
		return &cached, nil
	}

	deal, err := s.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	if err := cache.SetJSON(ctx, cache.DealDetailKey(id), deal, dealDetailCacheTTL); err != nil {
		logger.Warnw("deal_cache_write_failed", "deal_id", id, "error", err)
	}
	return deal, nil
}

// ListDeals 活动列表
func (s *DealService) ListDeals(filter repository.DealListFilter) ([]models.Deal, int64, error) {
	return s.dealRepo.List(filter)
}

// CreateDeal 创建活动（分销商/管理端）
func (s *DealService) CreateDeal(input SaveDealInput) (*models.Deal, error) {
	sizes, tiers, err := validateDealDefinition(input)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.DealStatusActive
	}
	deal := &models.Deal{
		Name:              strings.TrimSpace(input.Name),
		Description:       input.Description,
		DistributorID:     input.DistributorID,
		Status:            status,
		MinQtyForDiscount: input.MinQtyForDiscount,
		StartsAt:          input.StartsAt,
		EndsAt:            input.EndsAt,
		Sizes:             sizes,
		DiscountTiers:     tiers,
	}
	if err := s.dealRepo.Create(deal); err != nil {
		return nil, err
	}
	return s.dealRepo.GetByID(deal.ID)
}

// UpdateDeal 更新活动（整体替换规格与阶梯）
func (s *DealService) UpdateDeal(ctx context.Context, id uint, input SaveDealInput) (*models.Deal, error) {
	existing, err := s.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrDealNotFound
	}

	sizes, tiers, err := validateDealDefinition(input)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = existing.Status
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := s.dealRepo.WithTx(tx)
		if err := txRepo.Update(&models.Deal{
			ID:                id,
			Name:              strings.TrimSpace(input.Name),
			Description:       input.Description,
			Status:            status,
			MinQtyForDiscount: input.MinQtyForDiscount,
			StartsAt:          input.StartsAt,
			EndsAt:            input.EndsAt,
		}); err != nil {
			return err
		}
		if err := txRepo.ReplaceSizes(id, sizes); err != nil {
			return err
		}
		return txRepo.ReplaceDiscountTiers(id, tiers)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDealCache(ctx, id)
	return s.dealRepo.GetByID(id)
}

// UpdateDealStatus 上下架活动
func (s *DealService) UpdateDealStatus(ctx context.Context, id uint, status string) error {
	switch status {
	case constants.DealStatusActive, constants.DealStatusInactive:
	default:
		return ErrDealInvalid
	}
	existing, err := s.dealRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrDealNotFound
	}
	if err := s.dealRepo.UpdateStatus(id, status); err != nil {
		return err
	}
	s.invalidateDealCache(ctx, id)
	return nil
}

// NotificationHistory 活动通知历史（按用户聚合）
func (s *DealService) NotificationHistory(dealID uint) (map[uint][]models.DealNotification, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return s.dealRepo.NotificationHistory(dealID)
}

// ExpireDueDeals 将已过结束时间的活动下架，返回处理条数
func (s *DealService) ExpireDueDeals(now time.Time) (int64, error) {
	count, err := s.dealRepo.ExpireDealsBefore(now)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Infow("deals_expired", "count", count)
	}
	return count, nil
}

func (s *DealService) invalidateDealCache(ctx context.Context, id uint) {
	if err := cache.Del(ctx, cache.DealDetailKey(id)); err != nil {
		logger.Warnw("deal_cache_invalidate_failed", "deal_id", id, "error", err)
	}
}

// validateDealDefinition 校验活动定义：规格合法、阶梯阈值大于最低起订量
// 且数量与折扣比例均严格递增。校验通过后按阈值升序返回。
func validateDealDefinition(input SaveDealInput) ([]models.DealSize, []models.DealDiscountTier, error) {
	if strings.TrimSpace(input.Name) == "" || input.MinQtyForDiscount < 0 {
		return nil, nil, ErrDealInvalid
	}
	if len(input.Sizes) == 0 {
		return nil, nil, ErrDealInvalid
	}

	sizes := make([]models.DealSize, 0, len(input.Sizes))
	seen := make(map[string]bool, len(input.Sizes))
	for _, in := range input.Sizes {
		name := strings.TrimSpace(in.Size)
		if name == "" || seen[name] {
			return nil, nil, ErrDealInvalid
		}
		if !in.DiscountPrice.Decimal.IsPositive() || in.OriginalCost.Decimal.IsNegative() || in.BottlesPerCase < 0 {
			return nil, nil, ErrDealInvalid
		}
		seen[name] = true
		sizes = append(sizes, models.DealSize{
			Size:           name,
			OriginalCost:   in.OriginalCost,
			DiscountPrice:  in.DiscountPrice,
			BottlesPerCase: in.BottlesPerCase,
			SortOrder:      in.SortOrder,
		})
	}

	tiers := make([]models.DealDiscountTier, 0, len(input.DiscountTiers))
	for _, in := range input.DiscountTiers {
		tiers = append(tiers, models.DealDiscountTier{
			TierQuantity:        in.TierQuantity,
			TierDiscountPercent: in.TierDiscountPercent,
		})
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].TierQuantity < tiers[j].TierQuantity })

	hundred := decimal.NewFromInt(100)
	prevQty := input.MinQtyForDiscount
	prevPercent := decimal.Zero
	for _, tier := range tiers {
		if tier.TierQuantity <= prevQty {
			return nil, nil, ErrTierInvalid
		}
		percent := tier.TierDiscountPercent.Decimal
		if !percent.IsPositive() || percent.GreaterThan(hundred) {
			return nil, nil, ErrTierInvalid
		}
		if percent.LessThanOrEqual(prevPercent) {
			return nil, nil, ErrTierInvalid
		}
		prevQty = tier.TierQuantity
		prevPercent = percent
	}
	return sizes, tiers, nil
}
