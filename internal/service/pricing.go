package service

import (
	"github.com/pifa-next/internal/models"

	"github.com/shopspring/decimal"
)

// SizeLine 认购请求中的一行规格
type SizeLine struct {
	Size         string       `json:"size"`
	Quantity     int          `json:"quantity"`
	PricePerUnit models.Money `json:"price_per_unit"`
}

// PricedLine 计价后的规格行
type PricedLine struct {
	Size         string       `json:"size"`
	Quantity     int          `json:"quantity"`
	PricePerUnit models.Money `json:"price_per_unit"`
	TotalPrice   models.Money `json:"total_price"`
}

// PricingResult 计价结果
type PricingResult struct {
	Lines         []PricedLine             `json:"lines"`
	TotalQuantity int                      `json:"total_quantity"`
	RawTotal      models.Money             `json:"raw_total"`
	FinalTotal    models.Money             `json:"final_total"`
	AppliedTier   *models.DealDiscountTier `json:"applied_tier,omitempty"`
}

// 计价容差：总价与数量×单价的允许偏差
var priceTolerance = decimal.NewFromFloat(0.01)

// filterZeroQuantityLines 过滤数量为 0 的行（0 表示删除该规格，而非按 0 计价）。
// 数量为负视为非法输入。
func filterZeroQuantityLines(lines []SizeLine) ([]SizeLine, error) {
	filtered := make([]SizeLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 0 {
			return nil, ErrInvalidSizeLine
		}
		if line.Quantity == 0 {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered, nil
}

// computeLineTotals 逐行计算小计与原始总价。
// 调用前须已过滤数量为 0 的行；总数量低于 minQty 时整体拒绝。
func computeLineTotals(lines []SizeLine, minQty int) ([]PricedLine, decimal.Decimal, int, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, 0, ErrInvalidSizeLine
	}
	totalQuantity := 0
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, decimal.Zero, 0, ErrInvalidSizeLine
		}
		totalQuantity += line.Quantity
	}
	if totalQuantity < minQty {
		return nil, decimal.Zero, 0, ErrBelowMinimumQuantity
	}

	priced := make([]PricedLine, 0, len(lines))
	rawTotal := decimal.Zero
	for _, line := range lines {
		lineTotal := line.PricePerUnit.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		priced = append(priced, PricedLine{
			Size:         line.Size,
			Quantity:     line.Quantity,
			PricePerUnit: line.PricePerUnit,
			TotalPrice:   models.NewMoneyFromDecimal(lineTotal),
		})
		rawTotal = rawTotal.Add(lineTotal)
	}
	return priced, rawTotal, totalQuantity, nil
}

// applyDiscountTier 按总数量命中最高满足的折扣阶梯。
//
// 折扣按比例摊入每行单价（单价 × (1 − pct/100) 后按 2 位小数取整），
// 行小计由新单价重算，最终总价为各行小计之和，保证下游看到的
// 单价经济口径一致。无命中阶梯时原样返回。
func applyDiscountTier(lines []PricedLine, rawTotal decimal.Decimal, totalQuantity int, tiers []models.DealDiscountTier) (decimal.Decimal, *models.DealDiscountTier, []PricedLine) {
	var applied *models.DealDiscountTier
	for i := range tiers {
		if tiers[i].TierQuantity <= totalQuantity {
			if applied == nil || tiers[i].TierQuantity > applied.TierQuantity {
				applied = &tiers[i]
			}
		}
	}
	if applied == nil {
		return rawTotal, nil, lines
	}

	factor := decimal.NewFromInt(1).Sub(applied.TierDiscountPercent.Decimal.Div(decimal.NewFromInt(100)))
	updated := make([]PricedLine, 0, len(lines))
	finalTotal := decimal.Zero
	for _, line := range lines {
		unit := line.PricePerUnit.Decimal.Mul(factor).Round(2)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		updated = append(updated, PricedLine{
			Size:         line.Size,
			Quantity:     line.Quantity,
			PricePerUnit: models.NewMoneyFromDecimal(unit),
			TotalPrice:   models.NewMoneyFromDecimal(lineTotal),
		})
		finalTotal = finalTotal.Add(lineTotal)
	}
	return finalTotal, applied, updated
}

// PriceCommitment 对一组认购规格行完成整套计价。
//
// 单价取活动目录中的批发单价；行内引用的规格必须存在于活动目录；
// 总数量须达到活动最低起订量；最后按总数量评估折扣阶梯。
func PriceCommitment(deal *models.Deal, lines []SizeLine) (*PricingResult, error) {
	filtered, err := filterZeroQuantityLines(lines)
	if err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return nil, ErrInvalidSizeLine
	}

	requests := make([]SizeLine, 0, len(filtered))
	seen := make(map[string]int, len(filtered))
	for _, line := range filtered {
		catalogueSize := deal.FindSize(line.Size)
		if catalogueSize == nil {
			return nil, ErrUnknownSize
		}
		// 同一规格多行时合并数量
		if idx, ok := seen[line.Size]; ok {
			requests[idx].Quantity += line.Quantity
			continue
		}
		seen[line.Size] = len(requests)
		requests = append(requests, SizeLine{
			Size:         line.Size,
			Quantity:     line.Quantity,
			PricePerUnit: catalogueSize.DiscountPrice,
		})
	}

	priced, rawTotal, totalQuantity, err := computeLineTotals(requests, deal.MinQtyForDiscount)
	if err != nil {
		return nil, err
	}
	finalTotal, applied, updated := applyDiscountTier(priced, rawTotal, totalQuantity, deal.DiscountTiers)

	return &PricingResult{
		Lines:         updated,
		TotalQuantity: totalQuantity,
		RawTotal:      models.NewMoneyFromDecimal(rawTotal),
		FinalTotal:    models.NewMoneyFromDecimal(finalTotal),
		AppliedTier:   applied,
	}, nil
}

// withinPriceTolerance 判断两个金额是否在容差范围内一致
func withinPriceTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(priceTolerance)
}
