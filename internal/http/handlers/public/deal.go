package public

import (
	"errors"
	"strconv"

	handlershared "github.com/pifa-next/internal/http/handlers/shared"
	"github.com/pifa-next/internal/http/response"
	"github.com/pifa-next/internal/repository"
	"github.com/pifa-next/internal/service"

	"github.com/gin-gonic/gin"
)

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// ListDeals 会员侧活动列表（仅开放中的活动）
func (h *Handler) ListDeals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	deals, total, err := h.DealService.ListDeals(repository.DealListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}

	response.SuccessWithPage(c, deals, response.NewPagination(page, pageSize, total))
}

// GetDeal 活动详情（含规格与折扣阶梯）
func (h *Handler) GetDeal(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	deal, err := h.DealService.GetDeal(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDealNotFound) {
			respondError(c, response.CodeNotFound, "error.deal_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}

	response.Success(c, deal)
}

// PreviewCommitmentRequest 认购计价预览请求
type PreviewCommitmentRequest struct {
	Lines []service.SizeLine `json:"lines" binding:"required"`
}

// PreviewCommitment 计价预览：不落库，仅返回折扣与总价
func (h *Handler) PreviewCommitment(c *gin.Context) {
	dealID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req PreviewCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CommitmentService.PreviewCommitment(dealID, req.Lines)
	if err != nil {
		respondCommitmentPreviewError(c, err)
		return
	}

	response.Success(c, result)
}
