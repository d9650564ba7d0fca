package admin

import (
	"strconv"
	"strings"

	"github.com/pifa-next/internal/http/response"
	"github.com/pifa-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminListMessageLogs 短信/邮件发送记录列表
func (h *Handler) AdminListMessageLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

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

	logs, total, err := h.MessageLogRepo.List(repository.MessageLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		Channel:     strings.TrimSpace(c.Query("channel")),
		Status:      strings.TrimSpace(c.Query("status")),
		Destination: strings.TrimSpace(c.Query("destination")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}

	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
