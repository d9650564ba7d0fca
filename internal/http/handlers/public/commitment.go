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

// CreateCommitmentRequest 创建认购单请求
// Lines 为空且 quantity 大于 0 时按活动首个规格整单认购。
type CreateCommitmentRequest struct {
	DealID   uint               `json:"deal_id" binding:"required"`
	Lines    []service.SizeLine `json:"lines"`
	Quantity int                `json:"quantity"`
}

// CreateCommitment 会员创建认购单
func (h *Handler) CreateCommitment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	commitment, err := h.CommitmentService.CreateCommitment(service.CreateCommitmentInput{
		DealID:   req.DealID,
		UserID:   userID,
		Lines:    req.Lines,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondCommitmentCreateError(c, err)
		return
	}

	response.Success(c, commitment)
}

// ReviseCommitmentRequest 修订认购单规格请求
type ReviseCommitmentRequest struct {
	Lines []service.SizeLine `json:"lines" binding:"required"`
}

// ReviseCommitment 会员修订待处理认购单的规格数量
// 全部数量为零等价于取消认购。
func (h *Handler) ReviseCommitment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	commitmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req ReviseCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CommitmentService.ReviseCommitmentSizes(commitmentID, userID, req.Lines)
	if err != nil {
		respondCommitmentReviseError(c, err)
		return
	}

	response.Success(c, result)
}

// CancelCommitment 会员取消待处理认购单
func (h *Handler) CancelCommitment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	commitmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := h.CommitmentService.ReviseCommitmentSizes(commitmentID, userID, nil)
	if err != nil {
		respondCommitmentReviseError(c, err)
		return
	}

	response.Success(c, result)
}

// ListMyCommitments 会员认购单列表
func (h *Handler) ListMyCommitments(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	dealID, _ := strconv.ParseUint(c.Query("deal_id"), 10, 64)

	commitments, total, err := h.CommitmentService.ListUserCommitments(repository.CommitmentListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		DealID:   uint(dealID),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.commitment_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, commitments, response.NewPagination(page, pageSize, total))
}

// GetMyCommitment 会员认购单详情
func (h *Handler) GetMyCommitment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	commitmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	commitment, err := h.CommitmentService.GetCommitmentForUser(commitmentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommitmentNotFound):
			respondError(c, response.CodeNotFound, "error.commitment_not_found", nil)
		case errors.Is(err, service.ErrCommitmentNotOwner):
			respondError(c, response.CodeForbidden, "error.commitment_not_owner", nil)
		default:
			respondError(c, response.CodeInternal, "error.commitment_fetch_failed", err)
		}
		return
	}

	response.Success(c, commitment)
}
