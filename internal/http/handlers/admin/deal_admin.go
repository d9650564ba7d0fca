package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/http/response"
	"github.com/pifa-next/internal/repository"
	"github.com/pifa-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminSaveDealRequest 创建/更新批发活动请求
type AdminSaveDealRequest struct {
	Name              string                  `json:"name" binding:"required"`
	Description       string                  `json:"description"`
	DistributorID     uint                    `json:"distributor_id"`
	Status            string                  `json:"status"`
	MinQtyForDiscount int                     `json:"min_qty_for_discount"`
	StartsAt          *time.Time              `json:"starts_at"`
	EndsAt            *time.Time              `json:"ends_at"`
	Sizes             []service.DealSizeInput `json:"sizes" binding:"required"`
	DiscountTiers     []service.DealTierInput `json:"discount_tiers"`
}

func (r AdminSaveDealRequest) toServiceInput(actorID uint) service.SaveDealInput {
	distributorID := r.DistributorID
	if distributorID == 0 {
		distributorID = actorID
	}
	return service.SaveDealInput{
		Name:              strings.TrimSpace(r.Name),
		Description:       r.Description,
		DistributorID:     distributorID,
		Status:            r.Status,
		MinQtyForDiscount: r.MinQtyForDiscount,
		StartsAt:          r.StartsAt,
		EndsAt:            r.EndsAt,
		Sizes:             r.Sizes,
		DiscountTiers:     r.DiscountTiers,
	}
}

func respondDealSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDealNotFound):
		respondError(c, response.CodeNotFound, "error.deal_not_found", nil)
	case errors.Is(err, service.ErrDealInvalid):
		respondError(c, response.CodeBadRequest, "error.deal_invalid", nil)
	case errors.Is(err, service.ErrTierInvalid):
		respondError(c, response.CodeBadRequest, "error.tier_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.server_error", err)
	}
}

// AdminListDeals 管理端活动列表
func (h *Handler) AdminListDeals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var distributorID uint
	if raw := strings.TrimSpace(c.Query("distributor_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			distributorID = uint(parsed)
		}
	}

	deals, total, err := h.DealService.ListDeals(repository.DealListFilter{
		Page:          page,
		PageSize:      pageSize,
		DistributorID: distributorID,
		Status:        strings.TrimSpace(c.Query("status")),
		Search:        strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}

	response.SuccessWithPage(c, deals, response.NewPagination(page, pageSize, total))
}

// AdminGetDeal 管理端活动详情
func (h *Handler) AdminGetDeal(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	deal, err := h.DealService.GetDeal(c.Request.Context(), id)
	if err != nil {
		respondDealSaveError(c, err)
		return
	}

	response.Success(c, deal)
}

// AdminCreateDeal 创建批发活动
func (h *Handler) AdminCreateDeal(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}

	var req AdminSaveDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	deal, err := h.DealService.CreateDeal(req.toServiceInput(staffID))
	if err != nil {
		respondDealSaveError(c, err)
		return
	}

	response.Success(c, deal)
}

// AdminUpdateDeal 更新批发活动（整体替换规格与折扣阶梯）
func (h *Handler) AdminUpdateDeal(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req AdminSaveDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	deal, err := h.DealService.UpdateDeal(c.Request.Context(), id, req.toServiceInput(staffID))
	if err != nil {
		respondDealSaveError(c, err)
		return
	}

	response.Success(c, deal)
}

// AdminUpdateDealStatusRequest 更新活动状态请求
type AdminUpdateDealStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateDealStatus 上下架批发活动
func (h *Handler) AdminUpdateDealStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateDealStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case constants.DealStatusActive, constants.DealStatusInactive:
	default:
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.DealService.UpdateDealStatus(c.Request.Context(), id, status); err != nil {
		respondDealSaveError(c, err)
		return
	}

	response.Success(c, gin.H{"status": status})
}

// AdminDealNotificationHistory 活动的会员通知发送历史
func (h *Handler) AdminDealNotificationHistory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	history, err := h.DealService.NotificationHistory(id)
	if err != nil {
		respondDealSaveError(c, err)
		return
	}

	response.Success(c, history)
}
