package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/http/response"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/repository"
	"github.com/pifa-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListCommitments 管理端认购单列表
func (h *Handler) AdminListCommitments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var userID, dealID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			userID = uint(parsed)
		}
	}
	if raw := strings.TrimSpace(c.Query("deal_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			dealID = uint(parsed)
		}
	}

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	commitments, total, err := h.CommitmentService.ListCommitmentsAdmin(repository.CommitmentListFilter{
		Page:          page,
		PageSize:      pageSize,
		UserID:        userID,
		DealID:        dealID,
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		CommitmentNo:  strings.TrimSpace(c.Query("commitment_no")),
		CreatedFrom:   createdFrom,
		CreatedTo:     createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.commitment_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, commitments, response.NewPagination(page, pageSize, total))
}

// AdminGetCommitment 管理端认购单详情
func (h *Handler) AdminGetCommitment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	commitment, err := h.CommitmentService.GetCommitment(id)
	if err != nil {
		if errors.Is(err, service.ErrCommitmentNotFound) {
			respondError(c, response.CodeNotFound, "error.commitment_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.commitment_fetch_failed", err)
		return
	}

	response.Success(c, commitment)
}

// AdminUpdateCommitmentStatusRequest 审批认购单请求
// modified_quantity/modified_total_price 仅在通过时允许，
// 用于分销商按库存改量改价。
type AdminUpdateCommitmentStatusRequest struct {
	Status              string        `json:"status" binding:"required"`
	DistributorResponse string        `json:"distributor_response"`
	ModifiedQuantity    *int          `json:"modified_quantity"`
	ModifiedTotalPrice  *models.Money `json:"modified_total_price"`
}

// AdminUpdateCommitmentStatus 审批认购单（通过/拒绝，可附带改量改价）
func (h *Handler) AdminUpdateCommitmentStatus(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateCommitmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	commitment, err := h.CommitmentService.UpdateCommitmentStatus(service.UpdateCommitmentStatusInput{
		CommitmentID:        id,
		Status:              strings.ToLower(strings.TrimSpace(req.Status)),
		DistributorResponse: req.DistributorResponse,
		ModifiedQuantity:    req.ModifiedQuantity,
		ModifiedTotalPrice:  req.ModifiedTotalPrice,
		ActorID:             staffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommitmentNotFound):
			respondError(c, response.CodeNotFound, "error.commitment_not_found", nil)
		case errors.Is(err, service.ErrCommitmentStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.commitment_status_invalid", nil)
		case errors.Is(err, service.ErrCommitmentConflict):
			respondError(c, response.CodeConflict, "error.commitment_conflict", nil)
		case errors.Is(err, service.ErrBelowMinimumQuantity):
			respondError(c, response.CodeBadRequest, "error.below_minimum_quantity", nil)
		case errors.Is(err, service.ErrPriceMismatch):
			respondError(c, response.CodeBadRequest, "error.price_mismatch", nil)
		case errors.Is(err, service.ErrDealNotFound):
			respondError(c, response.CodeNotFound, "error.deal_not_found", nil)
		case errors.Is(err, service.ErrDealInvalid):
			respondError(c, response.CodeBadRequest, "error.deal_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.commitment_update_failed", err)
		}
		return
	}

	response.Success(c, commitment)
}

// AdminUpdateCommitmentPaymentStatusRequest 更新认购单付款状态请求
type AdminUpdateCommitmentPaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// AdminUpdateCommitmentPaymentStatus 登记认购单付款状态（仅已通过的认购单）
func (h *Handler) AdminUpdateCommitmentPaymentStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateCommitmentPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	paymentStatus := strings.ToLower(strings.TrimSpace(req.PaymentStatus))
	switch paymentStatus {
	case constants.PaymentStatusPending, constants.PaymentStatusPaid, constants.PaymentStatusFailed:
	default:
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	commitment, err := h.CommitmentService.MarkCommitmentPaymentStatus(id, paymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommitmentNotFound):
			respondError(c, response.CodeNotFound, "error.commitment_not_found", nil)
		case errors.Is(err, service.ErrCommitmentStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.commitment_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.commitment_update_failed", err)
		}
		return
	}

	response.Success(c, commitment)
}
